package models

// Activity is one freestanding logged exercise session. The gateway owns it;
// the client only builds and submits it.
type Activity struct {
	ID                string            `json:"id,omitempty"`
	UserID            string            `json:"userId,omitempty"`
	Type              ExerciseType      `json:"type"`
	Duration          int               `json:"duration,omitempty"` // minutes
	CaloriesBurned    int               `json:"caloriesBurned"`
	Sets              int               `json:"sets,omitempty"`
	Reps              int               `json:"reps,omitempty"`
	Notes             string            `json:"notes,omitempty"`
	AdditionalMetrics map[string]string `json:"additionalMetrics,omitempty"`
	CreatedAt         Timestamp         `json:"createdAt"`
}

// Recommendation is the AI-generated feedback for one activity.
type Recommendation struct {
	ID             string       `json:"id,omitempty"`
	ActivityID     string       `json:"activityId,omitempty"`
	UserID         string       `json:"userId,omitempty"`
	ActivityType   ExerciseType `json:"activityType,omitempty"`
	Recommendation string       `json:"recommendation"`
	Improvements   []string     `json:"improvements"`
	Suggestions    []string     `json:"suggestions"`
	Safety         []string     `json:"safety"`
	CreatedAt      Timestamp    `json:"createdAt"`
}

// Streak is the gateway's view of consecutive workout days.
type Streak struct {
	CurrentStreak  int         `json:"currentStreak"`
	LongestStreak  int         `json:"longestStreak"`
	WorkoutDates   []LocalDate `json:"workoutDates"`
	WorkedOutToday bool        `json:"workedOutToday"`
}

// UserProfile holds the body measurements used for calorie estimates.
type UserProfile struct {
	Email     string  `json:"email,omitempty"`
	FirstName string  `json:"firstName,omitempty"`
	LastName  string  `json:"lastName,omitempty"`
	Age       int     `json:"age,omitempty"`
	Weight    float64 `json:"weight,omitempty"` // kg
	Height    float64 `json:"height,omitempty"` // cm
	Gender    string  `json:"gender,omitempty"`
}

// ProfileUpdate is the body of PUT users/profile.
type ProfileUpdate struct {
	Age    int     `json:"age,omitempty"`
	Weight float64 `json:"weight,omitempty"`
	Height float64 `json:"height,omitempty"`
	Gender string  `json:"gender,omitempty"`
}
