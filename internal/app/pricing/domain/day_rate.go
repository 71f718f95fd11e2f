package domain

import "time"

// WeekendSource names which percentage priced a weekend day.
type WeekendSource string

const (
	WeekendFromNone      WeekendSource = "none"
	WeekendFromPriceList WeekendSource = "price_list"
	WeekendFromSeason    WeekendSource = "season"
)

// DayRate is the priced breakdown of one calendar day.
// Rate = Base + WeekendAdd + SeasonAdd + SeasonWeekendAdd; at most one of the two weekend
// terms is non-zero.
type DayRate struct {
	Date             time.Time     `json:"date"`
	SeasonName       string        `json:"season_name,omitempty"`
	Weekend          bool          `json:"weekend"`
	WeekendSource    WeekendSource `json:"weekend_source"`
	Base             int64         `json:"base,string"`
	WeekendAdd       int64         `json:"weekend_add,string"`
	SeasonAdd        int64         `json:"season_add,string"`
	SeasonWeekendAdd int64         `json:"season_weekend_add,string"`
	Rate             int64         `json:"rate,string"`
	RunningTotal     int64         `json:"running_total,string"`
}

type weekendRuleKey struct {
	seasonMatched        bool
	seasonDefinesWeekend bool
}

// weekendRules decides whose weekend percentage applies. A season's own weekend
// percentage replaces the list's; the two never stack.
//
//	season matched | season defines weekend% | weekend% used
//	no             | -                       | price list
//	yes            | no                      | price list
//	yes            | yes                     | season
var weekendRules = map[weekendRuleKey]WeekendSource{
	{seasonMatched: false, seasonDefinesWeekend: false}: WeekendFromPriceList,
	{seasonMatched: true, seasonDefinesWeekend: false}:  WeekendFromPriceList,
	{seasonMatched: true, seasonDefinesWeekend: true}:   WeekendFromSeason,
}

// IsWeekend reports whether the calendar date is a Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// DailyRate prices a single calendar day. All percentage terms are computed on the base
// rate alone and rounded half-up to the minor unit.
func DailyRate(pl *PriceList, date time.Time) (DayRate, error) {
	if pl == nil {
		return DayRate{}, ErrNoActivePriceList
	}
	base := pl.baseDailyRate
	season := MatchSeason(pl, date)

	day := DayRate{
		Date:          date,
		Weekend:       IsWeekend(date),
		WeekendSource: WeekendFromNone,
		Base:          base,
	}

	var err error
	if season != nil {
		day.SeasonName = season.Name
		if day.SeasonAdd, err = season.SurchargePct.Of(base); err != nil {
			return DayRate{}, err
		}
	}

	if day.Weekend {
		key := weekendRuleKey{
			seasonMatched:        season != nil,
			seasonDefinesWeekend: season != nil && season.DefinesWeekendSurcharge(),
		}
		day.WeekendSource = weekendRules[key]

		switch day.WeekendSource {
		case WeekendFromSeason:
			day.SeasonWeekendAdd, err = season.WeekendSurchargePct.Of(base)
		case WeekendFromPriceList:
			day.WeekendAdd, err = pl.weekendSurchargePct.Of(base)
		}
		if err != nil {
			return DayRate{}, err
		}
	}

	if day.Rate, err = addAmounts(day.Base, day.WeekendAdd, day.SeasonAdd, day.SeasonWeekendAdd); err != nil {
		return DayRate{}, err
	}
	return day, nil
}
