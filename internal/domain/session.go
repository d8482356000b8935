package domain

// Session holds every counter of one survey run plus its running totals.
// It is created once, filled by the crawler and read once by the reporter.
type Session struct {
	RepositoriesAnalyzed int
	FilesAnalyzed        int
	LinesAnalyzed        int
	// LinesPerFile keeps the line count of every analyzed file, in analysis order.
	LinesPerFile []float64

	SyntaxErrors                         *FeatureCounter
	DelegationBySpecifiers               *FeatureCounter
	Classes                              *FeatureCounter
	InnerClasses                         *FeatureCounter
	InnerClassesWithOuterTypeParameters  *FeatureCounter
	CompanionObjects                     *FeatureCounter
	Objects                              *FeatureCounter
	TopLevelObjects                      *FeatureCounter
	Enums                                *FeatureCounter
	EnumsWithConstructorParameters       *FeatureCounter
	EnumsWithEntriesAndMembersMixed      *FeatureCounter
	EnumEntries                          *FeatureCounter
	EnumEntriesWithBody                  *FeatureCounter
	Functions                            *FeatureCounter
	InlineFunctions                      *FeatureCounter
	ExtensionFunctions                   *FeatureCounter
	ExtensionFunctionsInClasses          *FeatureCounter
	Lambdas                              *FeatureCounter
	LambdasWithDeclaredReturnType        *FeatureCounter
	LabeledExpressions                   *FeatureCounter
	QualifiedBreakContinue               *FeatureCounter
	ReturnWithLabel                      *FeatureCounter
	WhileLoops                           *FeatureCounter
	DoWhileLoops                         *FeatureCounter
	WhenWithExpression                   *FeatureCounter
	WhenWithoutExpression                *FeatureCounter
	WhenConditionInRange                 *FeatureCounter
	PrimaryConstructorVisibility         *FeatureCounter
	Vals                                 *FeatureCounter
	Vars                                 *FeatureCounter
	ValsWithGetter                       *FeatureCounter
	ValsWithGetterExpressionBody         *FeatureCounter
	OverrideValsWithGetter               *FeatureCounter
	OverrideValsWithGetterExpressionBody *FeatureCounter
	TypeParameters                       *FeatureCounter
	TypeParametersWithVariance           *FeatureCounter
	TypeArguments                        *FeatureCounter
	TypeArgumentsWithVariance            *FeatureCounter
	TypeArgumentsWithStar                *FeatureCounter
	RangeOperators                       *FeatureCounter
	TypeCasts                            *FeatureCounter
	BackingFields                        *FeatureCounter

	order []*FeatureCounter
}

// NewSession creates the full counter catalog. With statsOnly set no counter
// records individual usages.
func NewSession(statsOnly bool) *Session {
	track := !statsOnly
	s := &Session{}

	// The order of this table is the order of the report.
	catalog := []struct {
		field **FeatureCounter
		name  string
		track bool
	}{
		{&s.SyntaxErrors, "Error count", track},
		{&s.DelegationBySpecifiers, "'by' delegations", track},
		{&s.Classes, "Classes", false},
		{&s.CompanionObjects, "Companion objects", false},
		{&s.PrimaryConstructorVisibility, "Primary constructors with non-default visibility", false},
		{&s.InnerClasses, "Inner classes", false},
		{&s.InnerClassesWithOuterTypeParameters, "Inner classes with outer type parameters", track},
		{&s.Objects, "Object declarations", false},
		{&s.TopLevelObjects, "Top-level object declarations", false},
		{&s.Enums, "Enum classes", false},
		{&s.EnumsWithConstructorParameters, "Enum classes with constructor parameters", false},
		{&s.EnumsWithEntriesAndMembersMixed, "Enum classes with entries and members mixed", track},
		{&s.EnumEntries, "Enum entries", false},
		{&s.EnumEntriesWithBody, "Enum entries with body", false},
		{&s.Functions, "Functions", false},
		{&s.InlineFunctions, "Inline functions", false},
		{&s.ExtensionFunctions, "Extension functions", false},
		{&s.ExtensionFunctionsInClasses, "Extension functions inside classes", false},
		{&s.Lambdas, "Lambdas", false},
		{&s.LambdasWithDeclaredReturnType, "Lambdas with declared return type", track},
		{&s.LabeledExpressions, "Labeled expressions", track},
		{&s.QualifiedBreakContinue, "'break' or 'continue' with label", track},
		{&s.ReturnWithLabel, "'return' with label", track},
		{&s.WhileLoops, "'while' loops", false},
		{&s.DoWhileLoops, "'do/while' loops", false},
		{&s.WhenWithExpression, "'when' with expression", false},
		{&s.WhenWithoutExpression, "'when' without expression", false},
		{&s.WhenConditionInRange, "'in' condition in 'when'", false},
		{&s.Vals, "'val' declarations", false},
		{&s.Vars, "'var' declarations", false},
		{&s.ValsWithGetter, "'val' declarations with getter", false},
		{&s.ValsWithGetterExpressionBody, "'val' declarations with expression-body getter", false},
		{&s.OverrideValsWithGetter, "'override val' declarations with getter", false},
		{&s.OverrideValsWithGetterExpressionBody, "'override val' declarations with expression-body getter", false},
		{&s.TypeParameters, "Type parameters", false},
		{&s.TypeParametersWithVariance, "Type parameters with variance", false},
		{&s.TypeArguments, "Type arguments", false},
		{&s.TypeArgumentsWithVariance, "Type arguments with variance", false},
		{&s.TypeArgumentsWithStar, "Type arguments with <*>", false},
		{&s.RangeOperators, "Range operators", false},
		{&s.TypeCasts, "'as' casts", false},
		{&s.BackingFields, "Backing fields", false},
	}

	s.order = make([]*FeatureCounter, 0, len(catalog))
	for _, entry := range catalog {
		c := NewFeatureCounter(entry.name, entry.track)
		*entry.field = c
		s.order = append(s.order, c)
	}

	return s
}

// Counters returns every counter in report order.
func (s *Session) Counters() []*FeatureCounter {
	return s.order
}

// Summary is the serializable form of a finished session.
type Summary struct {
	RepositoriesAnalyzed int              `json:"repositories_analyzed" yaml:"repositories_analyzed"`
	FilesAnalyzed        int              `json:"files_analyzed" yaml:"files_analyzed"`
	LinesAnalyzed        int              `json:"lines_analyzed" yaml:"lines_analyzed"`
	Features             []FeatureSummary `json:"features" yaml:"features"`
}

// FeatureSummary is the serializable form of one counter.
type FeatureSummary struct {
	Name     string         `json:"name" yaml:"name"`
	Count    int            `json:"count" yaml:"count"`
	Projects int            `json:"projects" yaml:"projects"`
	Usages   []FeatureUsage `json:"usages,omitempty" yaml:"usages,omitempty"`
}

// Summary snapshots the session in report order.
func (s *Session) Summary() Summary {
	features := make([]FeatureSummary, 0, len(s.order))
	for _, c := range s.order {
		features = append(features, FeatureSummary{
			Name:     c.Name,
			Count:    c.Count,
			Projects: c.ProjectCount(),
			Usages:   c.Usages,
		})
	}

	return Summary{
		RepositoriesAnalyzed: s.RepositoriesAnalyzed,
		FilesAnalyzed:        s.FilesAnalyzed,
		LinesAnalyzed:        s.LinesAnalyzed,
		Features:             features,
	}
}
