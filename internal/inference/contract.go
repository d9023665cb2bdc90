package inference

import "github.com/heartmarshall/nova-backend/internal/domain"

// Contract pins the input layout and output labels of a classifier
// version. Artifacts are checked against it at load time so a model
// trained on a different layout never serves traffic.
type Contract struct {
	Name         string
	Version      string
	FeatureNames []string
	// Offset is subtracted from the raw class before label lookup.
	Offset int
	Labels map[int]string
}

// Arity is the number of features the classifier expects.
func (c Contract) Arity() int { return len(c.FeatureNames) }

// Label maps a raw class to its label, or domain.LabelUnknown.
func (c Contract) Label(class int) string {
	if l, ok := c.Labels[class-c.Offset]; ok {
		return l
	}
	return domain.LabelUnknown
}

// ID returns "name/version".
func (c Contract) ID() string { return c.Name + "/" + c.Version }

var healthLabels = map[int]string{
	0: domain.LabelNormal,
	1: domain.LabelSuspect,
	2: domain.LabelPathological,
}

// MaternalV1 is the maternal vitals risk contract.
var MaternalV1 = Contract{
	Name:         "maternal",
	Version:      "v1",
	FeatureNames: domain.MaternalFeatureNames,
	Labels:       healthLabels,
}

// FetalV1 is the cardiotocography fetal health contract.
var FetalV1 = Contract{
	Name:         "fetal",
	Version:      "v1",
	FeatureNames: domain.FetalFeatureNames,
	Labels:       healthLabels,
}
