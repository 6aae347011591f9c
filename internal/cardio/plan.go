package cardio

const (
	VitalBP          = "Measure BP (Resting)"
	VitalWeight      = "Record Morning Weight"
	VitalRestingHR   = "Record Resting Heart Rate"
	smokerActivity   = " + Lung capacity breaths"
	smokerDiet       = " (Nicotine-free window: 4h)"
	daysInRebootPlan = 7
)

// DayPlan is one row of the weekly reboot plan.
type DayPlan struct {
	Day      string `json:"day"`
	Vital    string `json:"vital"`
	Activity string `json:"activity"`
	Diet     string `json:"diet"`
}

type condition int

const (
	always condition = iota
	whenBPHigh
	whenInactive
)

// phrase is a fixed text with an optional alternative chosen when its condition holds.
type phrase struct {
	text string
	alt  string
	when condition
}

func (p phrase) pick(t Triggers) string {
	switch p.when {
	case whenBPHigh:
		if t.BPHigh {
			return p.alt
		}
	case whenInactive:
		if t.Inactive {
			return p.alt
		}
	}
	return p.text
}

var week = [daysInRebootPlan]struct {
	day      string
	activity phrase
	diet     phrase
}{
	{
		day:      "Monday",
		activity: phrase{text: "15-min light walk", alt: "5-min stretching", when: whenInactive},
		diet:     phrase{text: "Start 2L water goal", alt: "Cut salt intake by 50%", when: whenBPHigh},
	},
	{
		day:      "Tuesday",
		activity: phrase{text: "Light yoga/stretching", alt: "Isometric wall-sit (30s)", when: whenBPHigh},
		diet:     phrase{text: "Zero processed sugar today"},
	},
	{
		day:      "Wednesday",
		activity: phrase{text: "30-min brisk walk", alt: "15-min modified walk", when: whenInactive},
		diet:     phrase{text: "Add leafy greens to lunch"},
	},
	{
		day:      "Thursday",
		activity: phrase{text: "Deep breathing (5 mins)"},
		diet:     phrase{text: "Intermittent fasting (12h gap)"},
	},
	{
		day:      "Friday",
		activity: phrase{text: "Bodyweight squats (10 reps)"},
		diet:     phrase{text: "Replace caffeine with herbal tea"},
	},
	{
		day:      "Saturday",
		activity: phrase{text: "Long nature walk (45 min)"},
		diet:     phrase{text: "Try a DASH-diet recipe"},
	},
	{
		day:      "Sunday",
		activity: phrase{text: "Rest & Mobility work"},
		diet:     phrase{text: "Meal prep for next week"},
	},
}

// RebootPlan builds the Monday..Sunday plan. The predicted label is part of
// the contract but does not change the schedule.
func RebootPlan(o Observation, label int) []DayPlan {
	t := o.Triggers()
	vital := morningVital(t)

	plan := make([]DayPlan, 0, daysInRebootPlan)
	for i, row := range week {
		entry := DayPlan{
			Day:      row.day,
			Vital:    vital,
			Activity: row.activity.pick(t),
			Diet:     row.diet.pick(t),
		}
		// Smokers get the overlay on Mon, Wed, Fri and Sun.
		if t.Smoker && i%2 == 0 {
			entry.Activity += smokerActivity
			entry.Diet += smokerDiet
		}
		plan = append(plan, entry)
	}
	return plan
}

func morningVital(t Triggers) string {
	switch {
	case t.BPHigh:
		return VitalBP
	case t.Obese:
		return VitalWeight
	default:
		return VitalRestingHR
	}
}
