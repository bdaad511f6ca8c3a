package render

import (
	"testing"
	"unsafe"
)

func TestExtractMath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		text       string
		start      int
		kind       mathKind
		source     string
		next       int
		terminated bool
	}{
		{"inline simple", "$x$ tail", 1, inlineMath, "x", 3, true},
		{"inline unterminated", "$abc", 1, inlineMath, "abc", 4, false},
		{"inline empty at end", "$", 1, inlineMath, "", 1, false},
		{"inline escaped delimiter", `$a\$b$`, 1, inlineMath, "a$b", 6, true},
		{"inline trailing backslash", `$a\`, 1, inlineMath, `a\`, 3, false},
		{"inline double backslash then escape", `$\\$$`, 1, inlineMath, `\$`, 5, true},
		{"display simple", "$$x$$", 2, displayMath, "x", 5, true},
		{"display keeps single dollar", "$$a$b$$", 2, displayMath, "a$b", 7, true},
		{"display escaped delimiter", `$$a\$$b$$`, 2, displayMath, "a$$b", 9, true},
		{"display backslash before single dollar", `$$a\$b$$`, 2, displayMath, `a\$b`, 8, true},
		{"display unterminated", "$$x + y", 2, displayMath, "x + y", 7, false},
		{"display trailing single dollar", "$$x$", 2, displayMath, "x$", 4, false},
		{"display leading dollar", "$$$x$$", 2, displayMath, "$x", 6, true},
		{"multiple escapes", `$\$\$ \$$`, 1, inlineMath, "$$ $", 9, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := extractMath(tc.text, tc.start, tc.kind)
			if got.Source != tc.source {
				t.Errorf("Source = %q, want %q", got.Source, tc.source)
			}
			if got.Next != tc.next {
				t.Errorf("Next = %d, want %d", got.Next, tc.next)
			}
			if got.Terminated != tc.terminated {
				t.Errorf("Terminated = %v, want %v", got.Terminated, tc.terminated)
			}
		})
	}
}

func TestExtractMath_NoEscapesSharesInput(t *testing.T) {
	t.Parallel()

	text := "$abcdef$"
	got := extractMath(text, 1, inlineMath)

	if got.Source != "abcdef" {
		t.Fatalf("Source = %q", got.Source)
	}
	if unsafe.StringData(got.Source) != unsafe.StringData(text[1:]) {
		t.Error("span without escapes was copied instead of sliced from the input")
	}
}

func TestLex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text  string
		pos   int
		kind  tokenKind
		width int
	}{
		{`\$x`, 0, tokEscapedDollar, 2},
		{`\$$`, 0, tokEscapedDouble, 3},
		{`\$$x`, 0, tokEscapedDouble, 3},
		{`\x`, 0, tokBackslash, 1},
		{`\`, 0, tokBackslash, 1},
		{"\n", 0, tokBlankLine, 1},
		{"\n\nx", 0, tokBlankLine, 2},
		{"\nx", 0, tokLineFold, 1},
		{"$$x", 0, tokDisplayMath, 2},
		{"$x", 0, tokInlineMath, 1},
		{"$", 0, tokInlineMath, 1},
		{"abc$", 0, tokText, 3},
		{"abc", 0, tokText, 3},
		{"ab\\c", 1, tokText, 1},
		{"héllo\n", 0, tokText, len("héllo")},
	}

	for _, tc := range tests {
		got := lex(tc.text, tc.pos)
		if got.kind != tc.kind || got.width != tc.width {
			t.Errorf("lex(%q, %d) = {%d %d}, want {%d %d}",
				tc.text, tc.pos, got.kind, got.width, tc.kind, tc.width)
		}
	}
}

func TestScanner_ModeTracksParagraph(t *testing.T) {
	t.Parallel()

	math := MathRendererFunc(func(string, bool) (string, error) { return "", nil })
	sc := newScanner("a\n\n$$x$$b", math)

	wantModes := []mode{modeTextOpen, modeOutside, modeOutside, modeTextOpen}
	for i, want := range wantModes {
		if err := sc.step(lex(sc.text, sc.pos)); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if sc.mode != want {
			t.Errorf("after step %d mode = %s, want %s", i, sc.mode, want)
		}
		if sc.asm.open != (sc.mode == modeTextOpen) {
			t.Errorf("after step %d assembler open = %v but mode = %s", i, sc.asm.open, sc.mode)
		}
	}
}
