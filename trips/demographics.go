package trips

import "github.com/citybikelab/stationlink/config"

// Demographics computes the validity flags and derived age for the
// legacy-era birth-year and gender fields. All three results are nil for
// modern rows, where the fields do not exist.
//
// A birth year is invalid when it equals the enrollment-form default
// sentinel on a casual rider after the cutoff year, or when the derived age
// is implausible. Age is populated only when the birth year is valid.
func Demographics(t *RawTrip, cfg config.DemographicsConfig) (birthYearValid *bool, genderValid *bool, ageAtTrip *int) {
	if t.Gender != nil {
		valid := *t.Gender == 1 || *t.Gender == 2
		genderValid = &valid
	}

	if t.BirthYear == nil || !t.HasStarted {
		return birthYearValid, genderValid, nil
	}

	tripYear := t.StartedAt.Year()
	age := tripYear - *t.BirthYear

	valid := true
	if *t.BirthYear == cfg.SentinelBirthYear &&
		t.MemberCasual == "casual" &&
		tripYear >= cfg.SentinelCutoffYear {
		valid = false
	}
	if age < cfg.MinAge || age > cfg.MaxAge {
		valid = false
	}
	birthYearValid = &valid

	if valid {
		ageAtTrip = &age
	}
	return birthYearValid, genderValid, ageAtTrip
}
