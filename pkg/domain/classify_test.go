package domain

import (
	"testing"
)

func TestClassifyByTitle(t *testing.T) {
	cases := []struct {
		title string
		want  Domain
	}{
		{"Specjalista ds. Sprzedaży B2B", Sales},
		{"Tester oprogramowania", QA},
		{"Specjalista ds. E-commerce", ECommerce},
		{"Specjalista ds. Marketingu", Marketing},
		{"Project Manager", ProjectManagement},
		{"Programista Java", Engineering},
		{"Konsultant infolinii", CustomerSupport},
		{"Asystentka zarządu", Administrative},
		{"Magazynier", Generic},
	}
	for _, c := range cases {
		if got := Classify(c.title, ""); got != c.want {
			t.Errorf("Classify(%q): expected %s, got %s", c.title, c.want, got)
		}
	}
}

func TestClassifyTitleBeatsBody(t *testing.T) {
	got := Classify("Kierownik Projektu", "wsparcie działu sprzedaży i marketingu")
	if got != ProjectManagement {
		t.Errorf("Expected title vocabulary to win, got %s", got)
	}
}

func TestClassifyFallsBackToBody(t *testing.T) {
	got := Classify("Pracownik działu", "prowadzenie kampanii google ads i social media")
	if got != Marketing {
		t.Errorf("Expected marketing from body vocabulary, got %s", got)
	}
}

func TestClassifySpecificityOrder(t *testing.T) {
	// "test engineer" must land in qa before engineering.
	if got := Classify("Test Engineer", ""); got != QA {
		t.Errorf("Expected qa, got %s", got)
	}
	// e-commerce wins over plain sales vocabulary.
	if got := Classify("Manager sklepu internetowego", ""); got != ECommerce {
		t.Errorf("Expected e-commerce, got %s", got)
	}
}

func TestAcquisitionRelevant(t *testing.T) {
	salesText := "pozyskiwanie nowych klientów przez cold calling i polecenia"

	if !AcquisitionRelevant(Sales, salesText) {
		t.Error("Expected sales role with acquisition vocabulary to be relevant")
	}
	if AcquisitionRelevant(Engineering, salesText) {
		t.Error("Expected non-commercial domain never relevant")
	}
	if AcquisitionRelevant(Sales, "obsługa stałych klientów kluczowych") {
		t.Error("Expected no relevance without acquisition vocabulary")
	}
	if AcquisitionRelevant(Sales, "obsługa przychodzących zamówień, bez pozyskiwania nowych klientów") {
		t.Error("Expected explicit disclaimer to suppress relevance")
	}
}
