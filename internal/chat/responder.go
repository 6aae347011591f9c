// Package chat answers free-text questions from fixed keyword tables.
package chat

import (
	"math/rand/v2"
	"strings"
)

// Source says which table produced a reply.
type Source string

const (
	SourceMedical  Source = "medical"
	SourceGeneral  Source = "general"
	SourceFallback Source = "fallback"
)

type entry struct {
	keyword  string
	response string
}

// Checked first, in order. The first keyword contained in the message wins.
var medicalResponses = []entry{
	{"symptom", "Warning symptoms of heart trouble include: 1. Chest pain or pressure, 2. Shortness of breath, 3. Pain in neck/jaw/back, 4. Nausea or cold sweats, 5. Lightheadedness. If these occur suddenly, call emergency services immediately (102 or your local number)."},
	{"chest pain", "Chest pain (Angina) can feel like squeezing, pressure, or fullness. While it can be non-cardiac (like GERD), it is often the first sign of a heart attack. Do not ignore it – seek immediate medical evaluation at an ER."},
	{"systolic", "Systolic pressure (the top/higher number) measures the force your heart exerts on artery walls during a beat. Normal is < 120. Elevated is 120-129. Stage 1 Hypertension is 130-139. High systolic pressure is a major risk factor for stroke and heart disease."},
	{"diastolic", "Diastolic pressure (the bottom/lower number) measures the force between beats while the heart rests. Normal is < 80. Consistent readings above 80 indicate hypertension. Both numbers are critical for your heart health assessment."},
	{"bmi", "Body Mass Index (BMI) categories: Underweight (<18.5), Normal (18.5-24.9), Overweight (25-29.9), and Obese (30+). A higher BMI increases the workload on your heart and raises the risk of diabetes and high blood pressure."},
	{"cholesterol", "Cholesterol has two main types: LDL ('bad') which clogs arteries, and HDL ('good') which clears them. To lower LDL: avoid trans fats, eat more soluble fiber (oats, beans), and consume Omega-3s (salmon, walnuts)."},
	{"exercise", "The goal is at least 150 minutes of moderate aerobic activity (like brisk walking) or 75 minutes of vigorous activity (running/swimming) per week, plus muscle-strengthening exercises twice a week. Start slow and stay consistent!"},
	{"diet", "A heart-healthy diet focuses on: 1. Fruits/Vegetables (half your plate), 2. Whole grains, 3. Lean proteins (fish, poultry, legumes), 4. Limiting salt, sugar, and saturated fats. The DASH and Mediterranean diets are excellent benchmarks."},
	{"smoke", "Smoking is a leading cause of cardiovascular disease. It damages the lining of your arteries, leads to plaque buildup, and reduces oxygen in your blood. Quitting at any age significantly lowers heart attack risk within 1-2 years."},
	{"pressure", "Hypertension (High Blood Pressure) is often called the 'silent killer' because it has no symptoms but causes permanent damage to the heart, brain, and kidneys. Reducing salt and increasing exercise are the best non-medical ways to lower it."},
	{"salt", "High sodium intake causes the body to retain water, raising blood pressure. Aim for less than 2,300mg/day (about 1 teaspoon). Avoid processed foods, canned soups, and salty snacks to protect your arteries."},
	{"prevention", "Top 5 Preventive Steps: 1. Know your numbers (BP, Cholesterol, Glucose), 2. Move your body daily, 3. Eat real, unprocessed food, 4. Manage stress through sleep/medication, 5. Avoid all tobacco products."},
	{"doctor", "Our Specialists page lists experts who can provide personalized care. If your Assessment shows High Risk, we recommend booking a consultation immediately for a professional diagnostic workup."},
	{"heart attack", "Signs of a heart attack: Chest discomfort, upper body pain (arms, back, neck), stomach pain (sometimes mistaken for indigestion), and shortness of breath. Time is heart muscle – seek help instantly."},
	{"stroke", "Use the FAST acronym for Stroke: Face drooping, Arm weakness, Speech difficulty, Time to call emergency services. Strokes are often caused by the same risk factors as heart disease, like high BP."},
	{"weight", "Losing even 5-10% of your body weight can dramatically improve your blood pressure and cholesterol levels, reducing the strain on your cardiovascular system."},
	{"diabetes", "High blood sugar damages blood vessels and the nerves that control your heart. Managing your 'A1C' levels is crucial for preventing long-term cardiovascular complications."},
	{"alcohol", "Excessive alcohol can raise blood pressure and contribute to heart failure. If you drink, limit it to 1 drink/day for women and 2/day for men."},
	{"stress", "Chronic stress increases hormones like cortisol, which can raise BP and heart rate. Practice deep breathing, meditation, or regular physical activity to help manage stress levels."},
}

// Greetings and small talk, checked only when no medical keyword matched.
var generalResponses = []entry{
	{"hello", "Hello! I'm Hearty, your AI specialist. I can explain your test results, give diet/exercise advice, or help you understand symptoms. What's on your mind?"},
	{"hi", "Hi there! Ready to take control of your heart health? Ask me about things like blood pressure, BMI, or healthy eating!"},
	{"hey", "Hey! How can I help you stay healthy today? I have lots of information on heart disease prevention and lifestyle tips."},
	{"who are you", "I'm Hearty AI, a dedicated cardiovascular health assistant. I use clinical guidelines to help users understand their heart risks and live longer, healthier lives."},
	{"thanks", "You're welcome! My goal is to see you stay healthy. Don't forget to check your 'Assessment' results!"},
	{"thank you", "It's my pleasure! I'm here 24/7 if you have more questions about your heart. Stay active!"},
	{"help", "I can help with: 1. Explaining BP/BMI numbers, 2. Diet and Exercise tips, 3. Identifying heart attack signs, 4. Finding a doctor. What specifically do you need?"},
	{"ok", "Great! Let me know if you have any specific questions about your heart health or our services."},
	{"good", "Wonderful! Keeping a positive attitude is actually good for your heart too. Anything else I can help with?"},
}

var fallbackResponses = []string{
	"That's a good question! To give you the best advice, could you ask me about specific things like 'Blood Pressure', 'Diet', 'Smoking', or 'Symptoms'?",
	"I'm not sure I understand that perfectly. However, I can tell you all about how to prevent heart disease if you're interested!",
	"I recommend checking our 'Specialists' page for an expert opinion. Would you like to know more about the different heart symptoms I recognize?",
	"I'm still learning! You can try asking: 'What are heart attack signs?' or 'How much should I exercise?'",
	"I'm here to help with your cardio health! Try mentioning keywords like 'cholesterol', 'bmi', or 'salt intake'.",
}

// Fallbacks returns a copy of the fixed fallback replies.
func Fallbacks() []string {
	return append([]string(nil), fallbackResponses...)
}

// Responder is stateless apart from its random source.
type Responder struct {
	pick func(n int) int
}

// NewResponder picks fallbacks uniformly at random.
func NewResponder() *Responder {
	return &Responder{pick: rand.IntN}
}

// NewResponderWithPicker lets callers fix the fallback choice.
func NewResponderWithPicker(pick func(n int) int) *Responder {
	return &Responder{pick: pick}
}

// Respond returns the reply for message and the table it came from.
func (r *Responder) Respond(message string) (string, Source) {
	msg := strings.ToLower(strings.TrimSpace(message))

	if reply, ok := lookup(medicalResponses, msg); ok {
		return reply, SourceMedical
	}
	if reply, ok := lookup(generalResponses, msg); ok {
		return reply, SourceGeneral
	}
	return fallbackResponses[r.pick(len(fallbackResponses))], SourceFallback
}

func lookup(table []entry, msg string) (string, bool) {
	for _, e := range table {
		if strings.Contains(msg, e.keyword) {
			return e.response, true
		}
	}
	return "", false
}
