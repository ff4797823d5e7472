package markdown

import (
	"strings"
	"testing"
)

func TestConvertEmoji(t *testing.T) {
	got := ConvertEmoji("<p>hello :smile: world</p>")
	if !strings.Contains(got, "😄") {
		t.Errorf("shortcode not substituted: %q", got)
	}
	if strings.Contains(got, ":smile:") {
		t.Errorf("shortcode left behind: %q", got)
	}
}

func TestConvertEmojiUnknownShortcode(t *testing.T) {
	in := "<p>:definitely_not_an_emoji_xyz:</p>"
	if got := ConvertEmoji(in); got != in {
		t.Errorf("unknown shortcode changed: %q", got)
	}
}

func TestConvertEmojiSkipsPre(t *testing.T) {
	in := `<pre><code class="language-text">:smile:
</code></pre>`
	if got := ConvertEmoji(in); got != in {
		t.Errorf("pre region changed: %q", got)
	}
}

func TestConvertEmojiSkipsInlineCode(t *testing.T) {
	in := "<p>use <code>:smile:</code> here</p>"
	if got := ConvertEmoji(in); got != in {
		t.Errorf("code region changed: %q", got)
	}
}

func TestConvertEmojiMixed(t *testing.T) {
	in := "<p>:tada: and <code>:tada:</code></p>"
	got := ConvertEmoji(in)
	if !strings.Contains(got, "🎉") {
		t.Errorf("prose shortcode not substituted: %q", got)
	}
	if !strings.Contains(got, "<code>:tada:</code>") {
		t.Errorf("code shortcode should stay literal: %q", got)
	}
}

func TestConvertEmojiColonsWithoutShortcode(t *testing.T) {
	in := "<p>ratio 3:2 and a time 12:30</p>"
	if got := ConvertEmoji(in); got != in {
		t.Errorf("plain colons changed: %q", got)
	}
}
