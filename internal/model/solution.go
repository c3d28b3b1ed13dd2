package model

const (
	PricingModelOnDemand          = "on_demand"
	PricingModelSavingsPlans      = "savings_plans"
	PricingModelReservedInstances = "reserved_instances"
	PricingModelProserve          = "proserve"
	PricingModelSubscription      = "subscription"
	PricingModelPPA               = "ppa"
)

type Solution struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	UseCases     []string `json:"use_cases"`
	Keywords     []string `json:"keywords"`
	PricingModel string   `json:"pricing_model"`
	Ctime        int64    `json:"ctime"`
	Mtime        int64    `json:"mtime"`
}
