package trajwatch

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/tmc/langchaingo/llms"
)

// EncodePNG encodes img as a PNG screenshot suitable for [Observation.Image].
func EncodePNG(img image.Image) (*llms.BinaryContent, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode screenshot: %w", err)
	}
	return &llms.BinaryContent{MIMEType: "image/png", Data: buf.Bytes()}, nil
}

// Feedback wraps non-empty reminder texts as content parts that can be placed
// in the agent's next prompt.
func Feedback(texts ...string) []llms.ContentPart {
	var parts []llms.ContentPart
	for _, text := range texts {
		if text == "" {
			continue
		}
		parts = append(parts, llms.TextContent{Text: text})
	}
	return parts
}
