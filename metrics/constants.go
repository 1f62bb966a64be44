package metrics

// Metric names.
const (
	MetricNameInteractions = "pasture_interactions_total"
	MetricNameFarmEvents   = "pasture_farm_events_total"
	MetricNameCows         = "pasture_cows"
	MetricNameInventory    = "pasture_inventory_items"
	MetricNameQueue        = "pasture_crafting_queue_length"
	MetricNameXP           = "pasture_xp"
	MetricNameLevel        = "pasture_level"
)

// Metric help text.
const (
	HelpTextInteractions = "Total number of body interactions by kind"
	HelpTextFarmEvents   = "Total number of farm events by event and result"
	HelpTextCows         = "Current number of cows by state"
	HelpTextInventory    = "Current quantity held of each item"
	HelpTextQueue        = "Current number of crafts in progress"
	HelpTextXP           = "Accumulated experience points"
	HelpTextLevel        = "Current player level"
)

// Label names.
const (
	LabelKind   = "kind"
	LabelEvent  = "event"
	LabelResult = "result"
	LabelState  = "state"
	LabelItem   = "item"
)

// Result label values.
const (
	ResultApplied  = "applied"
	ResultRejected = "rejected"
)
