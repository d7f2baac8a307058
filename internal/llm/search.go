package llm

import (
	"context"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
)

// SearchResponse is the neutral shape of a web-search-augmented completion:
// output items carrying content blocks, each optionally annotated with URL
// citations, plus the concatenated output text for fallback scanning.
type SearchResponse struct {
	Items      []OutputItem
	OutputText string
}

type OutputItem struct {
	Blocks []ContentBlock
}

type ContentBlock struct {
	Text        string
	Annotations []Annotation
}

// Annotation mirrors the provider's annotation entries. Only url_citation
// annotations carry a URL and title.
type Annotation struct {
	Type  string
	URL   string
	Title string
}

const AnnotationTypeURLCitation = "url_citation"

// SearchClient issues web-search-backed completions through the Responses
// API, which attaches url_citation annotations to its output text.
type SearchClient struct {
	client openai.Client
	model  string
}

func NewSearchClient(apiKey, model string) *SearchClient {
	if model == "" {
		model = "gpt-4.1"
	}
	return &SearchClient{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// SearchWeb runs one completion with the web-search tool enabled and
// converts the provider response into a SearchResponse.
func (c *SearchClient) SearchWeb(ctx context.Context, prompt string) (*SearchResponse, error) {
	params := responses.ResponseNewParams{
		Model: c.model,
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(prompt),
		},
		Tools: []responses.ToolUnionParam{
			{OfWebSearch: &responses.WebSearchToolParam{}},
		},
	}

	resp, err := c.client.Responses.New(ctx, params)
	if err != nil {
		return nil, classifyOpenAIError(err)
	}

	return convertResponse(resp), nil
}

func convertResponse(resp *responses.Response) *SearchResponse {
	out := &SearchResponse{}
	var text strings.Builder

	for _, item := range resp.Output {
		msg, ok := item.AsAny().(responses.ResponseOutputMessage)
		if !ok {
			continue
		}

		var outItem OutputItem
		for _, contentPart := range msg.Content {
			part, ok := contentPart.AsAny().(responses.ResponseOutputText)
			if !ok {
				continue
			}

			block := ContentBlock{Text: part.Text}
			text.WriteString(part.Text)

			for _, ann := range part.Annotations {
				block.Annotations = append(block.Annotations, Annotation{
					Type:  ann.Type,
					URL:   ann.URL,
					Title: ann.Title,
				})
			}
			outItem.Blocks = append(outItem.Blocks, block)
		}
		out.Items = append(out.Items, outItem)
	}

	out.OutputText = text.String()
	return out
}
