package ai

import (
	"fmt"
	"strings"
)

// KPILine is one KPI row as rendered into the performance prompt.
type KPILine struct {
	Name        string
	Target      float64
	Actual      float64
	Achievement float64
}

// BuildPerformancePrompt renders the deterministic instruction prompt for a
// performance summary. The JSON contract below is asserted only by prompt
// text; the reconciler must never assume the model complied.
func BuildPerformancePrompt(employeeName string, rows []KPILine, period string) string {
	var kpiLines strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&kpiLines, "- KPI: %s\n  Target: %.2f\n  Actual: %.2f\n  Achievement: %.2f%%\n\n",
			row.Name, row.Target, row.Actual, row.Achievement)
	}

	return fmt.Sprintf(performancePromptTemplate,
		employeeName, employeeName, employeeName, employeeName,
		employeeName, period, kpiLines.String())
}

const performancePromptTemplate = `
Anda adalah HR Performance Analyst profesional.

Tugas Anda: Berikan analisis performa dalam format JSON saja, tanpa teks lain sebelum atau sesudah JSON.

Struktur output JSON (wajib mengikuti format ini):
{
  "summary": "string",
  "achieved_kpi": ["string"],
  "not_achieved_kpi": ["string"],
  "kpi_improvement_suggestions": ["string"],
  "training_rekomendation": ["string"],
  "workload_adjustment_rekomendation": ["string"],
  "motivation": "string"
}

Keterangan:
- summary: ringkasan performa singkat (max 2 paragraf).
- achieved_kpi: [array] nama KPI yang mencapai/memenuhi target (contoh: ["Attendance Rate: target=95.00%%, actual=95.00%%"]).
- not_achieved_kpi: [array] nama KPI yang belum mencapai target (contoh: ["Attendance Rate: target=95.00%%, actual=85.00%%"]).
- kpi_improvement_suggestions: [array] berikan maksimal 2 rekomendasi konkret untuk meningkatkan performa KPI yang belum tercapai %s.
- training_rekomendation: [array] berikan maksimal 2 training yang dibutuhkan untuk meningkatkan performa KPI yang belum tercapai %s.
- workload_adjustment_rekomendation: [array] berikan maksimal 2 workload adjustment yang dibutuhkan untuk meningkatkan performa KPI %s.
- motivation: 1 kalimat kata motivasi profesional untuk %s yang bisa dijadikan sebagai motivasi untuk meningkatkan performa.

Aturan:
1. Jawaban HANYA berisi JSON yang valid, tanpa markdown code block atau teks tambahan.
2. Semua teks dalam bahasa Indonesia, profesional, dan sesuai data.
3. Jangan gunakan kata saya atau aku.
4. Berdasarkan data KPI: KPI tercapai jika achievement >= target yang diharapkan; belum tercapai jika di bawah target.
5. Ganti nama pada summary, recommendations, dan motivation jadi kamu.
6. Gunakan hanya bahasa Indonesia.

Data Karyawan:
Nama: %s
Periode: %s

Data KPI:
%s
Output (JSON saja):
`
