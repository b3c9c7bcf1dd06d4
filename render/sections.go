package render

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Section is one rendered step read back from a report.
type Section struct {
	Step            int
	URL             string
	Observation     string
	PreviousAction  string
	PredictedAction string
	HasImage        bool
}

// ReadSections parses the report at path and returns its step sections in
// document order. It may be called while a Renderer still has the file open.
func ReadSections(path string) ([]Section, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}

	var sections []Section
	doc.Find("section.step").Each(func(_ int, s *goquery.Selection) {
		step, _ := strconv.Atoi(s.AttrOr("data-step", "0"))
		href, _ := s.Find("h3.url a").Attr("href")
		sections = append(sections, Section{
			Step:            step,
			URL:             href,
			Observation:     s.Find("div.state_obv pre").Text(),
			PreviousAction:  s.Find("div.prev_action").Text(),
			PredictedAction: strings.TrimSpace(s.Find("div.parsed_action pre").Text()),
			HasImage:        s.Find("img").Length() > 0,
		})
	})
	return sections, nil
}

// ReadRunHeader returns the run configuration text of the report at path.
func ReadRunHeader(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open report: %w", err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return "", fmt.Errorf("parse report: %w", err)
	}
	return doc.Find("pre.run_config").Text(), nil
}
