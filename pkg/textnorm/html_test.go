package textnorm

import (
	"strings"
	"testing"
)

func TestLooksLikeHTML(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"<div class=\"profile\">Sprzedawca</div>", true},
		{"<html><body>x</body></html>", true},
		{"<p>jedna</p><p>druga</p>", true},
		{"Specjalista ds. Sprzedaży B2B - ABC Sp. z o.o.", false},
		{"porównanie: a < b oraz c > d", false},
	}
	for _, c := range cases {
		if got := LooksLikeHTML(c.input); got != c.want {
			t.Errorf("LooksLikeHTML(%q): expected %v, got %v", c.input, c.want, got)
		}
	}
}

func TestCleanHTMLExtractsBlocks(t *testing.T) {
	html := `<html><body>
<script>trackEverything()</script>
<nav><a href="/">Menu</a></nav>
<p>Sprzedawca - ABC Sp. z o.o. | 01.2020 – 12.2021</p>
<ul><li>obsługa klientów detalicznych</li><li>rozliczanie kasy</li></ul>
</body></html>`

	got := CleanHTML(html)
	if strings.Contains(got, "trackEverything") || strings.Contains(got, "Menu") {
		t.Errorf("Expected scripts and navigation dropped, got %q", got)
	}

	wantLines := []string{
		"Sprzedawca - ABC Sp. z o.o. | 01.2020 – 12.2021",
		"obsługa klientów detalicznych",
		"rozliczanie kasy",
	}
	for _, want := range wantLines {
		if !strings.Contains(got, want) {
			t.Errorf("Expected %q in cleaned text, got %q", want, got)
		}
	}
}

func TestCleanHTMLFallsBackToTagStripping(t *testing.T) {
	got := CleanHTML("<span>Kierownik</span> <span>Sprzedaży</span>")
	if !strings.Contains(got, "Kierownik") || !strings.Contains(got, "Sprzedaży") {
		t.Errorf("Expected text preserved after tag stripping, got %q", got)
	}
	if strings.Contains(got, "<") {
		t.Errorf("Expected no markup left, got %q", got)
	}
}
