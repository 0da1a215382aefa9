package llm

import (
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func TestTextRequest_Shape(t *testing.T) {
	req := TextRequest("m", "sys", "user text")
	if req.Model != "m" || len(req.Messages) != 2 {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.Messages[0].Role != openai.ChatMessageRoleSystem || req.Messages[0].Content != "sys" {
		t.Fatalf("system message wrong: %+v", req.Messages[0])
	}
	if req.Temperature != 0.1 || req.N != 1 {
		t.Fatalf("sampling params wrong: %+v", req)
	}
}

func TestVisionRequest_DataURL(t *testing.T) {
	req := VisionRequest("m", "sys", "describe", "QUJD", "image/png")
	if len(req.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(req.Messages))
	}
	parts := req.Messages[1].MultiContent
	if len(parts) != 2 {
		t.Fatalf("expected text+image parts, got %d", len(parts))
	}
	img := parts[1]
	if img.Type != openai.ChatMessagePartTypeImageURL || img.ImageURL == nil {
		t.Fatalf("image part wrong: %+v", img)
	}
	if !strings.HasPrefix(img.ImageURL.URL, "data:image/png;base64,QUJD") {
		t.Fatalf("data URL wrong: %q", img.ImageURL.URL)
	}
}

func TestReplyText(t *testing.T) {
	if got := ReplyText(openai.ChatCompletionResponse{}); got != "" {
		t.Fatalf("empty response should yield empty text, got %q", got)
	}
	resp := openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{
		{Message: openai.ChatCompletionMessage{Content: "hello"}},
	}}
	if got := ReplyText(resp); got != "hello" {
		t.Fatalf("got %q", got)
	}
}
