package fitbit

// APIVersion is the leading path segment of an endpoint
type APIVersion string

const (
	APIVersion1   APIVersion = "1"
	APIVersion1_1 APIVersion = "1.1"
	APIVersion1_2 APIVersion = "1.2"
)

// Period is the length of a time series ending at a date
type Period string

const (
	PeriodDay      Period = "1d"
	PeriodWeek     Period = "1w"
	PeriodMonth    Period = "1m"
	PeriodQuarter  Period = "3m"
	PeriodHalfYear Period = "6m"
	PeriodYear     Period = "1y"
	// PeriodMax is only accepted by body time series
	PeriodMax Period = "max"
)

type ActivityGoalPeriod string

const (
	ActivityGoalDaily  ActivityGoalPeriod = "daily"
	ActivityGoalWeekly ActivityGoalPeriod = "weekly"
)

type ActivityResource string

const (
	ActivityCalories             ActivityResource = "activityCalories"
	ActivityCaloriesTotal        ActivityResource = "calories"
	ActivityCaloriesBMR          ActivityResource = "caloriesBMR"
	ActivityDistance             ActivityResource = "distance"
	ActivityElevation            ActivityResource = "elevation"
	ActivityFloors               ActivityResource = "floors"
	ActivityMinutesSedentary     ActivityResource = "minutesSedentary"
	ActivityMinutesLightlyActive ActivityResource = "minutesLightlyActive"
	ActivityMinutesFairlyActive  ActivityResource = "minutesFairlyActive"
	ActivityMinutesVeryActive    ActivityResource = "minutesVeryActive"
	ActivitySteps                ActivityResource = "steps"
	ActivitySwimmingStrokes      ActivityResource = "swimming-strokes"
)

type BodyGoalType string

const (
	BodyGoalWeight BodyGoalType = "weight"
	BodyGoalFat    BodyGoalType = "fat"
)

type BodyResource string

const (
	BodyBMI    BodyResource = "bmi"
	BodyFat    BodyResource = "fat"
	BodyWeight BodyResource = "weight"
)

// DetailLevel is the sample interval of intraday data
type DetailLevel string

const (
	DetailSecond1  DetailLevel = "1sec"
	DetailMinute1  DetailLevel = "1min"
	DetailMinute5  DetailLevel = "5min"
	DetailMinute15 DetailLevel = "15min"
)

type NutritionResource string

const (
	NutritionCaloriesIn NutritionResource = "caloriesIn"
	NutritionWater      NutritionResource = "water"
)

type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// CollectionType scopes a subscription; the empty value subscribes to all collections
type CollectionType string

const (
	CollectionAll               CollectionType = ""
	CollectionActivities        CollectionType = "activities"
	CollectionBody              CollectionType = "body"
	CollectionFoods             CollectionType = "foods"
	CollectionSleep             CollectionType = "sleep"
	CollectionUserRevokedAccess CollectionType = "userRevokedAccess"
)
