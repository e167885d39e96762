package htmltext

import (
	"reflect"
	"testing"
)

func TestRemoveTagBlock(t *testing.T) {
	tests := []struct {
		name string
		html string
		tag  string
		want string
	}{
		{
			name: "balanced block removed",
			html: "before<script>var x = 1;</script>after",
			tag:  "script",
			want: "before after",
		},
		{
			name: "case insensitive tags",
			html: "a<SCRIPT>x</ScRiPt>b",
			tag:  "script",
			want: "a b",
		},
		{
			name: "multiple blocks",
			html: "<style>a</style>mid<style>b</style>end",
			tag:  "style",
			want: " mid end",
		},
		{
			name: "missing closing tag truncates",
			html: "keep this<script>never closed and the rest is gone",
			tag:  "script",
			want: "keep this",
		},
		{
			name: "no block leaves input unchanged",
			html: "<p>plain paragraph</p>",
			tag:  "script",
			want: "<p>plain paragraph</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemoveTagBlock(tt.html, tt.tag); got != tt.want {
				t.Errorf("RemoveTagBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStrip(t *testing.T) {
	text, links, images := Strip(`<script>x</script><p>Hello world.</p>`)
	if text != "Hello world." {
		t.Errorf("text = %q, want %q", text, "Hello world.")
	}
	if len(links) != 0 || len(images) != 0 {
		t.Errorf("expected no refs, got links=%v images=%v", links, images)
	}
}

func TestStripIdempotentOnPlainText(t *testing.T) {
	plain := "Just some plain text. No tags here!"
	text, _, _ := Strip(plain)
	if text != plain {
		t.Errorf("Strip() changed plain text: %q", text)
	}
}

func TestStripCollapsesWhitespace(t *testing.T) {
	text, _, _ := Strip("one \n\t two   <b>three</b>")
	if text != "one two three" {
		t.Errorf("text = %q, want %q", text, "one two three")
	}
}

func TestStripHarvestsRefsInOrder(t *testing.T) {
	html := `<a href="first">x</a><img src='pic.png'><a HREF="second">y</a><a href="first">dup</a>`
	_, links, images := Strip(html)

	wantLinks := []string{"first", "second", "first"}
	if !reflect.DeepEqual(links, wantLinks) {
		t.Errorf("links = %v, want %v", links, wantLinks)
	}
	wantImages := []string{"pic.png"}
	if !reflect.DeepEqual(images, wantImages) {
		t.Errorf("images = %v, want %v", images, wantImages)
	}
}

func TestStripHarvestsAfterBlockRemoval(t *testing.T) {
	// References inside script blocks are erased with the block.
	html := `<script>var u = "x"; fetch(href="hidden")</script><a href="visible">z</a>`
	_, links, _ := Strip(html)

	want := []string{"visible"}
	if !reflect.DeepEqual(links, want) {
		t.Errorf("links = %v, want %v", links, want)
	}
}

func TestCountParagraphs(t *testing.T) {
	tests := []struct {
		name string
		html string
		text string
		want int
	}{
		{"explicit paragraph tags", "<p>a</p><P>b</P>", "a b", 2},
		{"tag prefix does not count", "<pre>code</pre>", "code", 1},
		{"no tags but content", "just text", "just text", 1},
		{"empty document", "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountParagraphs(tt.html, tt.text); got != tt.want {
				t.Errorf("CountParagraphs() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	if got := Decode([]byte("héllo")); got != "héllo" {
		t.Errorf("UTF-8 decode = %q", got)
	}

	// 0xE9 is é in ISO-8859-1 and invalid as standalone UTF-8.
	latin := []byte{'c', 'a', 'f', 0xE9}
	if got := Decode(latin); got != "café" {
		t.Errorf("Latin-1 fallback = %q, want %q", got, "café")
	}
}
