package comment

import (
	"fmt"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/bbalet/stopwords"
	"github.com/psykhi/wordclouds"
	"github.com/quasitext/redharvest/configuration"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var (
	configPath string
	outputPath string
)

var DefaultColors = []color.RGBA{
	{0x1b, 0x1b, 0x1b, 0xff},
	{0x48, 0x48, 0x4B, 0xff},
	{0x59, 0x3a, 0xee, 0xff},
	{0x65, 0xCD, 0xFA, 0xff},
	{0x70, 0xD6, 0xBF, 0xff},
}

type Conf struct {
	FontMaxSize     int    `yaml:"font_max_size"`
	FontMinSize     int    `yaml:"font_min_size"`
	RandomPlacement bool   `yaml:"random_placement"`
	FontFile        string `yaml:"font_file"`
	Colors          []color.RGBA
	BackgroundColor color.RGBA `yaml:"background_color"`
	Width           int
	Height          int
	Mask            MaskConf
	SizeFunction    *string `yaml:"size_function"`
	Debug           bool
}

type MaskConf struct {
	File  string
	Color color.RGBA
}

var DefaultConf = Conf{
	FontMaxSize:     700,
	FontMinSize:     10,
	RandomPlacement: false,
	FontFile:        "./fonts/roboto/Roboto-Regular.ttf",
	Colors:          DefaultColors,
	BackgroundColor: color.RGBA{255, 255, 255, 255},
	Width:           4096,
	Height:          4096,
	Mask: MaskConf{"", color.RGBA{
		R: 0,
		G: 0,
		B: 0,
		A: 0,
	}},
	Debug: false,
}

func initWordcloudCommand() *cobra.Command {
	wordcloudCommand := &cobra.Command{
		Use:   "wordcloud <sub_id | short_link | permalink>...",
		Short: "Create a word cloud from the comments on the submission(s)",
		Args:  cobra.MinimumNArgs(1),
		Run:   runWordcloudCommand,
	}

	wordcloudCommand.Flags().StringVar(&configPath, "config", "config.yaml", "Path to config file")
	wordcloudCommand.Flags().StringVar(&outputPath, "output", "output.png", "Path to output image")

	return wordcloudCommand
}

func runWordcloudCommand(cmd *cobra.Command, args []string) {
	maxWords := 200

	wordRe := regexp.MustCompile("[A-Za-z]+")
	inputWords := map[string]int{}

	stopwords.LoadStopWordsFromFile("stopwords.txt", "en", "\n")

	st, err := configuration.OpenExistingDatabase()
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	for _, subRef := range args {
		sub, err := st.FindSubmission(subRef)
		if err != nil {
			log.Fatal(err)
		}
		comments, err := st.SubmissionComments(sub.SubID)
		if err != nil {
			log.Fatal(err)
		}
		for _, c := range comments {
			relevant := stopwords.CleanString(c.Body, "en", true)
			for _, w := range wordRe.FindAllString(relevant, -1) {
				lw := strings.ToLower(w)
				if len(lw) >= 3 {
					inputWords[lw] += 1
				}
			}
		}
	}

	wordList := make([]string, len(inputWords))
	i := 0
	for w := range inputWords {
		wordList[i] = w
		i++
	}
	sort.Slice(wordList, func(i, j int) bool {
		return inputWords[wordList[i]] < inputWords[wordList[j]]
	})
	if len(wordList) > maxWords {
		wordList = wordList[len(wordList)-maxWords:]
	}

	displayWords := map[string]int{}
	for _, w := range wordList {
		displayWords[w] = inputWords[w]
	}
	fmt.Println(displayWords)

	// Load config
	conf := DefaultConf
	content, err := os.ReadFile(configPath)
	if err == nil {
		err = yaml.Unmarshal(content, &conf)
		if err != nil {
			fmt.Printf("Failed to decode config, using defaults instead: %s\n", err)
		}
	} else {
		fmt.Println("No config file. Using defaults")
	}

	os.Chdir(filepath.Dir(configPath))
	var boxes []*wordclouds.Box
	if conf.Mask.File != "" {
		boxes = wordclouds.Mask(
			conf.Mask.File,
			conf.Width,
			conf.Height,
			conf.Mask.Color)
	}

	colors := make([]color.Color, 0)
	for _, c := range conf.Colors {
		colors = append(colors, c)
	}

	start := time.Now()
	oarr := []wordclouds.Option{wordclouds.FontFile(conf.FontFile),
		wordclouds.FontMaxSize(conf.FontMaxSize),
		wordclouds.FontMinSize(conf.FontMinSize),
		wordclouds.Colors(colors),
		wordclouds.MaskBoxes(boxes),
		wordclouds.Height(conf.Height),
		wordclouds.Width(conf.Width),
		wordclouds.RandomPlacement(conf.RandomPlacement),
		wordclouds.BackgroundColor(conf.BackgroundColor)}
	if conf.SizeFunction != nil {
		oarr = append(oarr, wordclouds.WordSizeFunction(*conf.SizeFunction))
	}
	if conf.Debug {
		oarr = append(oarr, wordclouds.Debug())
	}
	w := wordclouds.NewWordcloud(displayWords,
		oarr...,
	)

	img := w.Draw()
	outputFile, err := os.Create(outputPath)
	if err != nil {
		panic(err)
	}

	png.Encode(outputFile, img)
	outputFile.Close()
	fmt.Printf("Done in %v\n", time.Since(start))
}
