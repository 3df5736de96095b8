package util

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/teambition/rrule-go"
)

// HolidayAPIData adalah struct helper untuk parsing JSON dari API
type HolidayAPIData struct {
	Date              string `json:"holiday_date"`
	Name              string `json:"holiday_name"`
	IsNationalHoliday bool   `json:"is_national_holiday"`
}

// GetHolidayMap mengambil data hari libur nasional dari API eksternal
// dalam bentuk map dengan key tanggal "2006-01-02".
func GetHolidayMap(year string) (map[string]bool, error) {
	holidayMap := make(map[string]bool)
	resp, err := http.Get("https://api-harilibur.vercel.app/api?year=" + year)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var rawHolidays []HolidayAPIData
	if err := json.Unmarshal(body, &rawHolidays); err != nil {
		return nil, err
	}

	for _, rawHoliday := range rawHolidays {
		if rawHoliday.IsNationalHoliday {
			holidayMap[rawHoliday.Date] = true
		}
	}
	return holidayMap, nil
}

// CountWorkingDays menghitung jumlah hari kerja (Senin-Jumat) pada rentang
// tanggal inklusif, dikurangi hari libur nasional bila map-nya tersedia.
// holidays boleh nil.
func CountWorkingDays(from, to string, holidays map[string]bool) (int, error) {
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return 0, fmt.Errorf("tanggal 'from' tidak valid: %w", err)
	}
	end, err := time.Parse("2006-01-02", to)
	if err != nil {
		return 0, fmt.Errorf("tanggal 'to' tidak valid: %w", err)
	}
	if end.Before(start) {
		return 0, nil
	}

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   start,
		Until:     end,
		Byweekday: []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR},
	})
	if err != nil {
		return 0, fmt.Errorf("gagal membuat rule hari kerja: %w", err)
	}

	count := 0
	for _, day := range r.All() {
		if holidays[day.Format("2006-01-02")] {
			continue
		}
		count++
	}
	return count, nil
}
