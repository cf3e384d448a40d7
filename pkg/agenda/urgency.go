package agenda

// Tier is a coarse urgency bucket derived from a day offset. Tiers drive
// presentation emphasis only; they carry no scheduling semantics.
type Tier string

const (
	TierToday    Tier = "today"
	TierThisWeek Tier = "this_week"
	TierLater    Tier = "later"

	TierUrgent   Tier = "urgent"
	TierSoon     Tier = "soon"
	TierUpcoming Tier = "upcoming"
)

// Band maps day offsets up to and including MaxDays to a tier.
type Band struct {
	Tier    Tier
	MaxDays int
}

// Classifier buckets a day offset into a tier using an ordered threshold
// table. Different views use different tables, so the thresholds are data,
// not code.
type Classifier struct {
	Bands    []Band
	Fallback Tier
}

// Classify returns the tier for daysUntil: the first band whose MaxDays is
// >= daysUntil, or the fallback when none matches. Bands must be ordered
// by ascending MaxDays.
func (c Classifier) Classify(daysUntil int) Tier {
	for _, band := range c.Bands {
		if daysUntil <= band.MaxDays {
			return band.Tier
		}
	}
	return c.Fallback
}

// AgendaClassifier is the grouping used by the upcoming agenda view:
// overdue-or-today, within a week, later.
var AgendaClassifier = Classifier{
	Bands: []Band{
		{Tier: TierToday, MaxDays: 0},
		{Tier: TierThisWeek, MaxDays: 7},
	},
	Fallback: TierLater,
}

// DashboardClassifier is the tighter emphasis used by the dashboard and
// friend detail views.
var DashboardClassifier = Classifier{
	Bands: []Band{
		{Tier: TierUrgent, MaxDays: 1},
		{Tier: TierSoon, MaxDays: 3},
	},
	Fallback: TierUpcoming,
}
