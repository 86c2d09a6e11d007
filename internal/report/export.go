// Package report exports assessment history as a spreadsheet.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/mindcheck/internal/store"
)

const (
	historySheet = "Assessments"
	summarySheet = "Summary"
)

// HistoryHeader is the first row of the history sheet.
var HistoryHeader = []string{
	"Sequence",
	"Timestamp (UTC)",
	"Assessment ID",
	"Strategy",
	"Content Set",
	"Condition",
	"Matched Rule",
	"Sleep Hours",
	"Academic Performance",
	"Bullied",
	"Has Close Friends",
	"Homesick Level",
	"Mess Food Rating",
	"Sports Participation",
	"Social Activities",
	"Study Hours",
	"Screen Time",
	"Recommendation",
	"Note",
}

var columnWidths = map[string]float64{
	"A": 10, "B": 20, "C": 38, "D": 10, "E": 12, "F": 20, "G": 20,
	"R": 60, "S": 40,
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func historyRow(e store.AssessmentEvent) []any {
	f := e.Features
	return []any{
		e.Sequence,
		e.Timestamp.UTC().Format("2006-01-02 15:04:05"),
		e.AssessmentID,
		e.Strategy,
		e.ContentSet,
		e.Condition,
		e.MatchedRule,
		f.SleepHours,
		string(f.AcademicPerformance),
		yesNo(f.Bullied),
		yesNo(f.HasCloseFriends),
		f.HomesickLevel,
		f.MessFoodRating,
		yesNo(f.SportsParticipation),
		f.SocialActivities,
		f.StudyHours,
		f.ScreenTime,
		e.Recommendation,
		e.Note,
	}
}

// WriteHistory writes events and per-condition counts as an xlsx workbook.
func WriteHistory(w io.Writer, events []store.AssessmentEvent, counts []store.ConditionCount) error {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(historySheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}
	index, err := f.GetSheetIndex(historySheet)
	if err != nil {
		return fmt.Errorf("locate sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := writeRow(f, historySheet, 1, toAny(HistoryHeader)); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(HistoryHeader), 1)
	if err := f.SetCellStyle(historySheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("set header style: %w", err)
	}
	for col, width := range columnWidths {
		if err := f.SetColWidth(historySheet, col, col, width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	for i, e := range events {
		if err := writeRow(f, historySheet, i+2, historyRow(e)); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	if err := writeRow(f, summarySheet, 1, []any{"Condition", "Count"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A1", "B1", headerStyle); err != nil {
		return fmt.Errorf("set summary header style: %w", err)
	}
	for i, c := range counts {
		if err := writeRow(f, summarySheet, i+2, []any{c.Condition, c.Count}); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 24); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell := "A" + strconv.Itoa(row)
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
