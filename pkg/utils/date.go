package utils

import "time"

const monthKeyLayout = "01-2006"

// MonthKey formata a data no padrão mm-yyyy usado no ranking e nos relatórios
func MonthKey(date time.Time) string {
	return date.Format(monthKeyLayout)
}

func FirstDayOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// SameMonth compara ano e mês no fuso informado
func SameMonth(a, b time.Time, loc *time.Location) bool {
	a, b = a.In(loc), b.In(loc)
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func SameYear(a, b time.Time, loc *time.Location) bool {
	return a.In(loc).Year() == b.In(loc).Year()
}

// PreviousMonth retorna o primeiro dia do mês anterior
func PreviousMonth(date time.Time) time.Time {
	return FirstDayOfMonth(date).AddDate(0, -1, 0)
}
