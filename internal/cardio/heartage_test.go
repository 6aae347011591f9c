package cardio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func healthy(age float64) Observation {
	o := DefaultObservation()
	o.Age = age
	o.Systolic = 110
	o.Diastolic = 70
	return o
}

func TestHeartAgeReferenceRow(t *testing.T) {
	o := Observation{
		Gender: 1, Height: 156, Weight: 85, Systolic: 140, Diastolic: 90,
		Cholesterol: 3, Glucose: 1, Smoke: 0, Alcohol: 0, Active: 1, Age: 55,
	}
	// +7 BP, +6 BMI 34.9, +2 cholesterol, -1 active
	assert.Equal(t, 69, HeartAge(o))
}

func TestHeartAgeBloodPressureTiers(t *testing.T) {
	cases := []struct {
		name     string
		sys, dia float64
		want     int
	}{
		{"stage 2 by systolic", 140, 70, 45 + 7 - 1},
		{"stage 2 by diastolic", 110, 90, 45 + 7 - 1},
		{"stage 1 by systolic", 130, 70, 45 + 3 - 1},
		{"stage 1 by diastolic", 110, 85, 45 + 3 - 1},
		{"normal", 119, 79, 45 - 1 - 1},
		{"elevated", 125, 79, 45 - 1},
		{"diastolic 80 blocks normal bonus", 110, 80, 45 - 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := healthy(45)
			o.Systolic, o.Diastolic = tc.sys, tc.dia
			assert.Equal(t, tc.want, HeartAge(o))
		})
	}
}

func TestHeartAgeLifestyleFactors(t *testing.T) {
	base := HeartAge(healthy(50))
	assert.Equal(t, 48, base)

	o := healthy(50)
	o.Smoke = 1
	assert.Equal(t, base+5, HeartAge(o))

	o = healthy(50)
	o.Weight = 80 // BMI 27.7
	assert.Equal(t, base+2, HeartAge(o))

	o = healthy(50)
	o.Weight = 90 // BMI 31.1
	assert.Equal(t, base+6, HeartAge(o))

	o = healthy(50)
	o.Cholesterol = 2
	o.Glucose = 3
	assert.Equal(t, base+4, HeartAge(o))

	o = healthy(50)
	o.Active = 0
	assert.Equal(t, base+4, HeartAge(o), "inactive is +3 instead of -1")
}

func TestHeartAgeClampsToHundred(t *testing.T) {
	o := Observation{
		Height: 160, Weight: 120, Systolic: 180, Diastolic: 110,
		Cholesterol: 3, Glucose: 3, Smoke: 1, Active: 0, Age: 90,
	}
	assert.Equal(t, 100, HeartAge(o))
}

func TestHeartAgeLowerBoundWinsPastHundred(t *testing.T) {
	assert.Equal(t, 101, HeartAge(healthy(106)))
}

func TestHeartAgeRoundsHalfToEven(t *testing.T) {
	assert.Equal(t, 44, HeartAge(healthy(45.5)))
	assert.Equal(t, 42, HeartAge(healthy(44.5)))
}

func TestHeartAgeStaysInRange(t *testing.T) {
	for _, age := range []float64{18, 30, 45, 60, 75, 95} {
		for _, sys := range []float64{90, 125, 135, 160} {
			for _, weight := range []float64{45, 75, 95, 150} {
				for _, flags := range []int{0, 1} {
					o := Observation{
						Height: 170, Weight: weight, Systolic: sys, Diastolic: 70,
						Cholesterol: 1 + 2*flags, Glucose: 1 + flags, Smoke: flags, Active: 1 - flags, Age: age,
					}
					got := float64(HeartAge(o))
					assert.GreaterOrEqual(t, got, age-5)
					assert.LessOrEqual(t, got, 100.0)
				}
			}
		}
	}
}

func TestHeartAgeMonotoneInEachFactor(t *testing.T) {
	mutations := map[string][]func(*Observation){
		"blood pressure": {
			func(o *Observation) { o.Systolic, o.Diastolic = 110, 70 },
			func(o *Observation) { o.Systolic, o.Diastolic = 125, 70 },
			func(o *Observation) { o.Systolic, o.Diastolic = 135, 70 },
			func(o *Observation) { o.Systolic, o.Diastolic = 150, 95 },
		},
		"smoking": {
			func(o *Observation) { o.Smoke = 0 },
			func(o *Observation) { o.Smoke = 1 },
		},
		"bmi": {
			func(o *Observation) { o.Weight = 60 },
			func(o *Observation) { o.Weight = 80 },
			func(o *Observation) { o.Weight = 100 },
		},
		"cholesterol": {
			func(o *Observation) { o.Cholesterol = 1 },
			func(o *Observation) { o.Cholesterol = 2 },
			func(o *Observation) { o.Cholesterol = 3 },
		},
		"glucose": {
			func(o *Observation) { o.Glucose = 1 },
			func(o *Observation) { o.Glucose = 2 },
			func(o *Observation) { o.Glucose = 3 },
		},
		"inactivity": {
			func(o *Observation) { o.Active = 1 },
			func(o *Observation) { o.Active = 0 },
		},
	}
	for name, steps := range mutations {
		t.Run(name, func(t *testing.T) {
			prev := -1
			for _, step := range steps {
				o := healthy(50)
				step(&o)
				got := HeartAge(o)
				assert.GreaterOrEqual(t, got, prev)
				prev = got
			}
		})
	}
}

func TestAgeGap(t *testing.T) {
	o := healthy(55)
	assert.Equal(t, 14.0, AgeGap(69, o))
	assert.Equal(t, -2.0, AgeGap(53, o))
}
