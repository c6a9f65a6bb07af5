package Payroll

import (
	"fmt"
	"sort"
	"time"

	"ErpClinico/Models"
)

// DefaultSessionHours is assumed when a session has no recorded end time.
const DefaultSessionHours = 1.0

// SessionHours is the wall-clock difference between start and end time,
// falling back to one hour when either is missing or unparsable.
func SessionHours(startTime, endTime string) float64 {
	if startTime == "" || endTime == "" {
		return DefaultSessionHours
	}
	start, err := time.Parse("15:04", startTime)
	if err != nil {
		return DefaultSessionHours
	}
	end, err := time.Parse("15:04", endTime)
	if err != nil {
		return DefaultSessionHours
	}
	hours := end.Sub(start).Hours()
	if hours <= 0 {
		return DefaultSessionHours
	}
	return hours
}

func homeSessionValue(rate Models.TherapistRate) float64 {
	if rate.SessionValueHome != 0 {
		return rate.SessionValueHome
	}
	return rate.SessionValue
}

func homeHourValue(rate Models.TherapistRate) float64 {
	if rate.HourValueHome != 0 {
		return rate.HourValueHome
	}
	return rate.HourValue
}

// Compute aggregates the period's payable sessions into one detail row per
// therapist. Therapists that worked but have no configured rate still get a
// zero-value row, and a warning is returned so the operator knows which rate
// is missing. The function is pure: it writes nothing.
func Compute(periodID uint, sessions []Models.Session, orders map[uint]Models.MedicalOrder, rates map[uint]Models.TherapistRate, therapists map[uint]Models.Therapist) ([]Models.PayrollDetail, []string) {
	details := make(map[uint]*Models.PayrollDetail)

	for _, session := range sessions {
		order, ok := orders[session.MedicalOrderID]
		if !ok {
			continue
		}

		detail, ok := details[order.TherapistID]
		if !ok {
			detail = &Models.PayrollDetail{
				PayrollPeriodID: periodID,
				TherapistID:     order.TherapistID,
				TherapistName:   therapists[order.TherapistID].Name,
			}
			details[order.TherapistID] = detail
		}

		hours := SessionHours(session.StartTime, session.EndTime)
		if session.LocationType == Models.LocationHome {
			detail.SessionsHome++
			detail.HoursHome += hours
		} else {
			detail.SessionsIntramural++
			detail.HoursIntramural += hours
		}
	}

	var warnings []string
	var therapistIDs []uint
	for id := range details {
		therapistIDs = append(therapistIDs, id)
	}
	sort.Slice(therapistIDs, func(i, j int) bool { return therapistIDs[i] < therapistIDs[j] })

	var result []Models.PayrollDetail
	for _, id := range therapistIDs {
		detail := details[id]
		rate, ok := rates[id]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("therapist %s (id %d) has sessions in the period but no configured rate", detail.TherapistName, id))
			result = append(result, *detail)
			continue
		}

		if rate.IsHourly {
			detail.SubtotalIntramural = detail.HoursIntramural * rate.HourValue
			detail.SubtotalHome = detail.HoursHome * homeHourValue(rate)
		} else {
			detail.SubtotalIntramural = float64(detail.SessionsIntramural) * rate.SessionValue
			detail.SubtotalHome = float64(detail.SessionsHome) * homeSessionValue(rate)
		}
		detail.TotalGross = detail.SubtotalIntramural + detail.SubtotalHome

		result = append(result, *detail)
	}

	return result, warnings
}
