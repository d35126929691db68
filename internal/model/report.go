package model

// FormAnalyticsReport is the dashboard-facing analytics payload. It is
// recomputed on demand and never persisted.
type FormAnalyticsReport struct {
	Overview          ReportOverview   `json:"overview"`
	SubmissionsByDate []DateBucket     `json:"submissionsByDate"`
	FieldAnalytics    []FieldAnalytics `json:"fieldAnalytics"`
	DeviceAnalytics   DeviceAnalytics  `json:"deviceAnalytics"`
}

// ReportOverview holds the headline KPIs for a form over a date range.
type ReportOverview struct {
	TotalSubmissions      int     `json:"totalSubmissions"`
	TotalViews            int     `json:"totalViews"`
	ConversionRate        float64 `json:"conversionRate"`
	AverageCompletionTime int     `json:"averageCompletionTime"`
	BounceRate            float64 `json:"bounceRate"`
}

// DateBucket is one calendar day of activity. Days without any views or
// submissions are absent from the series rather than zero-filled.
type DateBucket struct {
	Date        string `json:"date"`
	Submissions int    `json:"submissions"`
	Views       int    `json:"views"`
}

// FieldAnalytics describes the focus/blur funnel for a single form field.
// CompletionRate and DropOffRate always sum to 100 when FocusCount > 0.
type FieldAnalytics struct {
	FieldID        string  `json:"fieldId"`
	FieldLabel     string  `json:"fieldLabel"`
	FocusCount     int     `json:"focusCount"`
	CompletionRate float64 `json:"completionRate"`
	AverageTime    float64 `json:"averageTime"`
	DropOffRate    float64 `json:"dropOffRate"`
}

// DeviceAnalytics is the session share per device class, in percent.
// Unknown device classes count toward the denominator but have no bucket.
type DeviceAnalytics struct {
	Desktop float64 `json:"desktop"`
	Mobile  float64 `json:"mobile"`
	Tablet  float64 `json:"tablet"`
}
