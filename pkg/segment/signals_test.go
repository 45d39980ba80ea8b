package segment

import (
	"testing"
)

func TestIsHeaderLine(t *testing.T) {
	cases := []struct {
		name string
		line string
		next string
		want bool
	}{
		{
			name: "one-line header with inline range",
			line: "Specjalista ds. Sprzedaży B2B - ABC Sp. z o.o., Warszawa | 03.2021 – obecnie",
			want: true,
		},
		{
			name: "dash plus legal suffix without dates",
			line: "Kierownik Projektu - Delta Sp. z o.o.",
			want: true,
		},
		{
			name: "header confirmed by date range on next line",
			line: "Starszy Specjalista ds. Marketingu - Beta S.A.",
			next: "01.2019 – 02.2021",
			want: true,
		},
		{
			name: "bullet line",
			line: "- pozyskiwanie klientów B2B",
			want: false,
		},
		{
			name: "numbered list item",
			line: "1. przygotowanie ofert",
			want: false,
		},
		{
			name: "lowercase sentence",
			line: "odpowiadałem za kontakt z klientami",
			want: false,
		},
		{
			name: "action sentence starting with verb noun",
			line: "Zarządzanie zespołem pięciu handlowców",
			want: false,
		},
		{
			name: "bare company with city belongs to block above",
			line: "ABC Sp. z o.o., Warszawa",
			want: false,
		},
		{
			name: "date-only line",
			line: "03.2021 – obecnie",
			want: false,
		},
		{
			name: "long prose with a dash",
			line: "Praca wymagała ciągłego kontaktu z klientami - zarówno telefonicznego jak i osobistego w terenie",
			want: false,
		},
		{
			name: "empty line",
			line: "",
			want: false,
		},
	}

	for _, c := range cases {
		if got := isHeaderLine(c.line, c.next); got != c.want {
			t.Errorf("%s: isHeaderLine(%q, %q) = %v, expected %v", c.name, c.line, c.next, got, c.want)
		}
	}
}

func TestIsDateRangeLine(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"03.2021 – obecnie", true},
		{"05.2019 - 12.2020", true},
		{"2018 – 2020", true},
		{"06.2022", true},
		{"- obsługa klientów od 2019", false},
		{"Kierownik - Delta Sp. z o.o.", false},
	}
	for _, c := range cases {
		if got := isDateRangeLine(c.line); got != c.want {
			t.Errorf("isDateRangeLine(%q) = %v, expected %v", c.line, got, c.want)
		}
	}
}

func TestTitleCaseRatioSkipsConnectors(t *testing.T) {
	if ratio := titleCaseRatio("Specjalista ds. Sprzedaży i Obsługi"); ratio < 0.99 {
		t.Errorf("Expected connectors skipped, got ratio %v", ratio)
	}
	if ratio := titleCaseRatio("praca przy obsłudze zamówień"); ratio != 0 {
		t.Errorf("Expected 0 for lowercase prose, got %v", ratio)
	}
}

func TestIsBareCompanyCity(t *testing.T) {
	if !isBareCompanyCity("ABC Sp. z o.o., Warszawa") {
		t.Error("Expected company-with-city detected")
	}
	if isBareCompanyCity("Specjalista ds. Sprzedaży - ABC Sp. z o.o., Warszawa") {
		t.Error("Expected dash-separated header not flagged")
	}
	if isBareCompanyCity("Kierownik Sprzedaży, Warszawa") {
		t.Error("Expected job-title line not flagged as bare company")
	}
}
