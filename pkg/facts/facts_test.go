package facts

import (
	"testing"
)

func TestAnalyzeEmptyRole(t *testing.T) {
	fs := Analyze("Praca w sklepie", nil, false)

	if fs.HasActions || fs.HasScale || fs.HasResult || fs.HasContext {
		t.Errorf("Expected no facts detected, got %+v", fs)
	}
	if fs.NeedsProcess || fs.NeedsContext {
		t.Errorf("Expected no needs flagged, got %+v", fs)
	}
}

func TestDetectActionsByVerbStem(t *testing.T) {
	fs := Analyze("Zarządzanie zespołem i przygotowanie ofert", nil, false)
	if !fs.HasActions {
		t.Error("Expected actions from verb stems")
	}
}

func TestDetectActionsByBullets(t *testing.T) {
	fs := Analyze("- kontakt telefoniczny\n- wizyty u partnerów", nil, false)
	if !fs.HasActions {
		t.Error("Expected actions from two bullet lines")
	}

	fs = Analyze("- kontakt telefoniczny", nil, false)
	if fs.HasActions {
		t.Error("Expected a single bullet to not count as actions")
	}
}

func TestDetectActionsByLabelledList(t *testing.T) {
	fs := Analyze("zakres: kontakt z klientami, wyceny, reklamacje", nil, false)
	if !fs.HasActions {
		t.Error("Expected actions from a labelled comma list")
	}
}

func TestDetectScale(t *testing.T) {
	fs := Analyze("Kontakt z 80 klientami miesięcznie", nil, false)
	if !fs.HasScale {
		t.Error("Expected scale from number plus unit vocabulary")
	}

	fs = Analyze("skala: 40 wycen tygodniowo", nil, false)
	if !fs.HasScale {
		t.Error("Expected scale from explicit label")
	}
}

func TestDatesDoNotCountAsScale(t *testing.T) {
	fs := Analyze("Praca u klienta w okresie 03.2021 – 12.2022", nil, false)
	if fs.HasScale {
		t.Error("Expected date tokens excluded from scale detection")
	}

	fs = Analyze("Praca u klienta od 2019 roku", nil, false)
	if fs.HasScale {
		t.Error("Expected a bare year excluded from scale detection")
	}
}

func TestDetectResultChange(t *testing.T) {
	fs := Analyze("Wzrost sprzedaży o 15%", nil, false)
	if !fs.HasResult {
		t.Error("Expected result from percent change")
	}
	if fs.HasContext {
		t.Error("Expected no context without a baseline")
	}
	if !fs.NeedsContext {
		t.Error("Expected context flagged as needed for a bare result")
	}
}

func TestDetectResultWithDeltaContext(t *testing.T) {
	fs := Analyze("Wzrost konwersji z 2% do 3,5%", nil, false)
	if !fs.HasResult {
		t.Error("Expected result from explicit delta")
	}
	if !fs.HasContext {
		t.Error("Expected delta to carry its own baseline")
	}
	if fs.NeedsContext {
		t.Error("Expected no context need when the delta names the baseline")
	}
}

func TestDetectResultEnglishDelta(t *testing.T) {
	fs := Analyze("Grew conversion from 10% to 18% year over year", nil, false)
	if !fs.HasResult || !fs.HasContext {
		t.Errorf("Expected result and context from English delta, got %+v", fs)
	}
}

func TestCeilingResultNeedsNoContext(t *testing.T) {
	fs := Analyze("Wszystkie dostawy zawsze na czas, zero reklamacji", nil, false)
	if !fs.HasResult {
		t.Error("Expected ceiling statement to count as a result")
	}
	if fs.NeedsContext {
		t.Error("Expected no context need for a ceiling statement")
	}
}

func TestSoftPhrasesAreNotResults(t *testing.T) {
	fs := Analyze("Realizowałem plan sprzedaży i dbałem o dobre wyniki", nil, false)
	if fs.HasResult {
		t.Error("Expected KPI vocabulary without a number to not count as a result")
	}
}

func TestDetectProcess(t *testing.T) {
	fs := Analyze("Pozyskiwanie klientów przez cold calling i follow-up po spotkaniach", nil, true)
	if !fs.HasProcess {
		t.Error("Expected process from two acquisition stages")
	}
	if fs.NeedsProcess {
		t.Error("Expected no process need when stages are described")
	}

	fs = Analyze("Sprzedaż produktów bankowych", nil, true)
	if fs.HasProcess {
		t.Error("Expected no process without stage vocabulary")
	}
	if !fs.NeedsProcess {
		t.Error("Expected process flagged as needed for acquisition-relevant role")
	}

	fs = Analyze("Sprzedaż produktów bankowych", nil, false)
	if fs.NeedsProcess {
		t.Error("Expected no process need when domain is not acquisition-relevant")
	}
}

func TestAnswersExtendTheFactBase(t *testing.T) {
	role := "Sprzedawca w salonie"
	answers := []string{"Obsługiwałem 120 zamówień miesięcznie"}

	fs := Analyze(role, answers, false)
	if !fs.HasScale {
		t.Error("Expected scale detected from interview answer")
	}
	if !fs.HasActions {
		t.Error("Expected actions detected from interview answer")
	}
}
