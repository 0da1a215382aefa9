package cache

import (
	"context"
	"testing"
)

func TestPageCache_RoundTrip(t *testing.T) {
	c := &PageCache{Dir: t.TempDir()}
	ctx := context.Background()

	url := "https://example.com/recipes/1"
	if err := c.Save(ctx, url, "text/html", `"etag-1"`, "Mon, 02 Jan 2006 15:04:05 GMT", []byte("<html>body</html>")); err != nil {
		t.Fatalf("save: %v", err)
	}

	meta, err := c.LoadMeta(ctx, url)
	if err != nil {
		t.Fatalf("load meta: %v", err)
	}
	if meta.ETag != `"etag-1"` || meta.ContentType != "text/html" {
		t.Fatalf("unexpected meta: %+v", meta)
	}

	body, err := c.LoadBody(ctx, url)
	if err != nil {
		t.Fatalf("load body: %v", err)
	}
	if string(body) != "<html>body</html>" {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestPageCache_MissIsError(t *testing.T) {
	c := &PageCache{Dir: t.TempDir()}
	if _, err := c.LoadMeta(context.Background(), "https://example.com/missing"); err == nil {
		t.Fatalf("expected miss error")
	}
}

func TestReplyCache_RoundTrip(t *testing.T) {
	c := &ReplyCache{Dir: t.TempDir()}
	ctx := context.Background()

	key := ReplyKey("test-model", "system\n\nuser prompt")
	if _, ok := c.Get(ctx, key); ok {
		t.Fatalf("expected miss before save")
	}
	if err := c.Save(ctx, key, `{"name":"cached"}`); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok := c.Get(ctx, key)
	if !ok || got != `{"name":"cached"}` {
		t.Fatalf("expected cached reply, got %q ok=%v", got, ok)
	}
}

func TestReplyKey_DistinguishesModels(t *testing.T) {
	if ReplyKey("model-a", "p") == ReplyKey("model-b", "p") {
		t.Fatalf("keys must differ per model")
	}
	if ReplyKey("m", "p1") == ReplyKey("m", "p2") {
		t.Fatalf("keys must differ per prompt")
	}
}
