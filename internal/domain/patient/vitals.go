package patient

import "strings"

// FeverThreshold is the body temperature above which a patient is flagged
// feverish. The comparison is strict: exactly 100.4 is not a fever.
const FeverThreshold = 100.4

// NoMedication is stored when no medication rule triggers.
const NoMedication = "No medication"

// HasFever reports whether the temperature indicates a fever.
func HasFever(temperature float64) bool {
	return temperature > FeverThreshold
}

// DetermineMedication derives the medication string from blood pressure and
// the fever flag. Systolic above 140, diastolic below 70 or diastolic above
// 90 adds "BP Control Med"; a fever adds "Fever Med". Multiple entries join
// with ", " in that order.
func DetermineMedication(systolicBP, diastolicBP float64, hasFever bool) string {
	var meds []string

	if systolicBP > 140 || diastolicBP < 70 || diastolicBP > 90 {
		meds = append(meds, "BP Control Med")
	}
	if hasFever {
		meds = append(meds, "Fever Med")
	}

	if len(meds) == 0 {
		return NoMedication
	}
	return strings.Join(meds, ", ")
}
