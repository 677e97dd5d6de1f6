package database

import (
	"database/sql"
	"fmt"
	"regexp"

	"github.com/mattn/go-sqlite3"
	"github.com/quasitext/redharvest/utils"
)

func regex(re, s string) (bool, error) {
	return regexp.MatchString(re, s)
}

func init() {
	sql.Register("sqlite3_regex",
		&sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("regexp", regex, true)
			},
		})
}

// Store is the file-backed database holding everything a crawl harvests.
type Store struct {
	Filename string
	DB       *sql.DB
}

// OpenStore opens the database at path, creating the schema on first use.
func OpenStore(path string) (*Store, error) {
	existing, err := utils.PathExists(path)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3_regex", path+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	st := &Store{Filename: path, DB: db}
	if !existing {
		if err := st.initTables(); err != nil {
			db.Close()
			return nil, err
		}
	}
	return st, nil
}

func (st *Store) Close() {
	st.DB.Close()
}

type RowsReceiver func(*sql.Rows) bool

// forEachRow feeds every result row of stmt to receiver until it returns
// false or the rows run out. All of the read-side query methods funnel
// through here.
func (st *Store) forEachRow(receiver RowsReceiver, stmt string, params ...any) error {
	rows, err := st.DB.Query(stmt, params...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if !receiver(rows) {
			break
		}
	}
	return rows.Err()
}

func (st *Store) ForEachRowOrPanic(receiver RowsReceiver, stmt string, params ...any) {
	if err := st.forEachRow(receiver, stmt, params...); err != nil {
		panic(err)
	}
}

func (st *Store) ForSingleRowOrPanic(receiver RowsReceiver, stmt string, params ...any) {
	var rowReceived bool
	singleReceiver := func(rows *sql.Rows) bool {
		if rowReceived {
			panic(fmt.Sprintf("Received second row for %q", stmt))
		}
		receiver(rows)
		rowReceived = true
		return true
	}
	st.ForEachRowOrPanic(singleReceiver, stmt, params...)
}

func (st *Store) initTables() error {
	schema := `
CREATE TABLE subreddits (
	id INTEGER NOT NULL PRIMARY KEY,
	subreddit_id TEXT NOT NULL UNIQUE,
	name TEXT UNIQUE,

	UNIQUE(subreddit_id, name)
);

CREATE TABLE users (
	id INTEGER NOT NULL PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	user_id TEXT,
	comment_karma INTEGER,
	link_karma INTEGER,
	is_mod BOOLEAN,
	has_gold BOOLEAN,
	verified BOOLEAN,
	created INTEGER
);

CREATE TABLE submissions (
	id INTEGER NOT NULL PRIMARY KEY,
	sub_id TEXT NOT NULL UNIQUE,
	user_name TEXT REFERENCES users (name),
	subreddit_id TEXT REFERENCES subreddits (subreddit_id),
	timestamp INTEGER,
	title TEXT NOT NULL,
	body TEXT NOT NULL,
	score INTEGER,
	ups INTEGER,
	downs INTEGER,
	stickied BOOLEAN,
	distinguished TEXT,
	gilded INTEGER,
	is_self BOOLEAN,
	domain TEXT,
	short_link TEXT,
	permalink TEXT
);

CREATE TABLE comments (
	id INTEGER NOT NULL PRIMARY KEY,
	com_id TEXT NOT NULL UNIQUE,
	user_name TEXT REFERENCES users (name),
	sub_id TEXT REFERENCES submissions (sub_id),
	subreddit_id TEXT,
	parent_id TEXT,
	timestamp INTEGER,
	body TEXT NOT NULL,
	score INTEGER,
	ups INTEGER,
	downs INTEGER,
	rank INTEGER,
	num_replies INTEGER,
	convo_depth INTEGER,
	distinguished TEXT,
	gilded INTEGER,
	is_root BOOLEAN,
	permalink TEXT
);

CREATE TABLE user_activity (
	id INTEGER NOT NULL PRIMARY KEY,
	user_name TEXT NOT NULL REFERENCES users (name),
	subreddit_id TEXT NOT NULL,
	subreddit_name TEXT,
	comment_count INTEGER,
	comment_pos_karma INTEGER,
	comment_neg_karma INTEGER,
	comment_net_karma INTEGER,
	comment_avg_pos_karma REAL,
	comment_avg_neg_karma REAL,
	comment_avg_net_karma REAL,
	submission_count INTEGER,
	submission_pos_karma INTEGER,
	submission_neg_karma INTEGER,
	submission_net_karma INTEGER,
	submission_avg_pos_karma REAL,
	submission_avg_neg_karma REAL,
	submission_avg_net_karma REAL,

	UNIQUE(user_name, subreddit_id),
	FOREIGN KEY (subreddit_id, subreddit_name) REFERENCES subreddits (subreddit_id, name)
);
`
	_, err := st.DB.Exec(schema)
	return err
}
