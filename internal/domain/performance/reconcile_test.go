package performance

import (
	"strings"
	"testing"
)

func TestExtractInsightsFencedJSONWithTrailingComma(t *testing.T) {
	raw := "```json\n{\"summary\":\"s\",\"recommendations\":[\"a\",\"b\"],\"motivation\":\"m\",}\n```"
	rec, mot := ExtractInsights(raw)
	if rec == nil || *rec != "a\nb" {
		t.Fatalf("expected recommendation \"a\\nb\", got %v", deref(rec))
	}
	if mot == nil || *mot != "m" {
		t.Fatalf("expected motivation \"m\", got %v", deref(mot))
	}
}

func TestExtractInsightsSurroundingCommentary(t *testing.T) {
	raw := "Berikut hasil analisis:\n{\"recommendations\":[\"fokus pada target\"],\"motivation\":\"tetap semangat\"}\nSemoga membantu."
	rec, mot := ExtractInsights(raw)
	if rec == nil || *rec != "fokus pada target" {
		t.Fatalf("expected recommendation, got %v", deref(rec))
	}
	if mot == nil || *mot != "tetap semangat" {
		t.Fatalf("expected motivation, got %v", deref(mot))
	}
}

func TestExtractInsightsTruncatedObject(t *testing.T) {
	// Token limit cut the response before the closing brace.
	raw := "{\"summary\":\"s\",\"recommendations\":[\"a\",\"b\"],\"motivation\":\"m\""
	rec, mot := ExtractInsights(raw)
	if rec == nil || *rec != "a\nb" {
		t.Fatalf("expected truncation recovery for recommendation, got %v", deref(rec))
	}
	if mot == nil || *mot != "m" {
		t.Fatalf("expected truncation recovery for motivation, got %v", deref(mot))
	}
}

func TestExtractInsightsSectionFallback(t *testing.T) {
	raw := "Analisis performa kamu cukup baik.\n\n**Rekomendasi**\nTingkatkan kehadiran.\nIkuti pelatihan manajemen waktu.\n\n**Motivasi**\nTerus berkembang setiap hari."
	rec, mot := ExtractInsights(raw)
	if rec == nil || !strings.Contains(*rec, "Tingkatkan kehadiran.") {
		t.Fatalf("expected section recommendation, got %v", deref(rec))
	}
	if rec != nil && strings.Contains(*rec, "**") {
		t.Fatalf("recommendation should stop before next heading, got %q", *rec)
	}
	if mot == nil || *mot != "Terus berkembang setiap hari." {
		t.Fatalf("expected section motivation, got %v", deref(mot))
	}
}

func TestExtractInsightsSectionFallbackEnglish(t *testing.T) {
	raw := "**Recommendation**\nFocus on delivery.\n\n**Motivation**\nKeep going."
	rec, mot := ExtractInsights(raw)
	if rec == nil || *rec != "Focus on delivery." {
		t.Fatalf("expected english recommendation, got %v", deref(rec))
	}
	if mot == nil || *mot != "Keep going." {
		t.Fatalf("expected english motivation, got %v", deref(mot))
	}
}

func TestExtractInsightsTotalFailure(t *testing.T) {
	rec, mot := ExtractInsights("Hasil performa kamu sudah cukup baik, pertahankan.")
	if rec != nil || mot != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", deref(rec), deref(mot))
	}
}

func TestExtractInsightsEmptyFieldsAreOmission(t *testing.T) {
	rec, mot := ExtractInsights(`{"recommendations":[],"motivation":""}`)
	if rec != nil || mot != nil {
		t.Fatalf("empty fields must map to omission, got (%v, %v)", deref(rec), deref(mot))
	}
}

func TestExtractInsightsStringRecommendations(t *testing.T) {
	rec, _ := ExtractInsights(`{"recommendations":"perbaiki kualitas"}`)
	if rec == nil || *rec != "perbaiki kualitas" {
		t.Fatalf("expected bare string recommendations to pass through, got %v", deref(rec))
	}
}

func TestExtractInsightsScalarRecommendations(t *testing.T) {
	rec, _ := ExtractInsights(`{"recommendations":5}`)
	if rec == nil || *rec != "5" {
		t.Fatalf("expected scalar recommendations to stringify, got %v", deref(rec))
	}

	rec, _ = ExtractInsights(`{"recommendations":true}`)
	if rec == nil || *rec != "true" {
		t.Fatalf("expected boolean recommendations to stringify, got %v", deref(rec))
	}
}

func TestRepairForDisplayObject(t *testing.T) {
	raw := "```json\n{\"summary\":\"bagus\",\"motivation\":\"semangat\",}\n```"
	value := RepairForDisplay(raw)
	obj, ok := value.(map[string]any)
	if !ok {
		t.Fatalf("expected decoded object, got %T", value)
	}
	if obj["summary"] != "bagus" || obj["motivation"] != "semangat" {
		t.Fatalf("unexpected object: %v", obj)
	}
}

func TestRepairForDisplayTruncated(t *testing.T) {
	value := RepairForDisplay(`{"summary":"terpotong"`)
	obj, ok := value.(map[string]any)
	if !ok {
		t.Fatalf("expected synthetic-brace recovery, got %T", value)
	}
	if obj["summary"] != "terpotong" {
		t.Fatalf("unexpected object: %v", obj)
	}
}

func TestRepairForDisplayPlainText(t *testing.T) {
	raw := "Ringkasan performa dalam teks bebas."
	if value := RepairForDisplay(raw); value != raw {
		t.Fatalf("expected plain text to pass through, got %v", value)
	}
}

func TestRepairForDisplayCRLF(t *testing.T) {
	value := RepairForDisplay("```json\r\n{\"a\":1}\r\n```")
	obj, ok := value.(map[string]any)
	if !ok {
		t.Fatalf("expected decoded object, got %T", value)
	}
	if obj["a"] != float64(1) {
		t.Fatalf("unexpected object: %v", obj)
	}
}

func deref(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
