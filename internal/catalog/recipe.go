package catalog

// RecipeDefinition crafts Result from exactly two elements.
type RecipeDefinition struct {
	ID       string
	Name     string
	Requires [2]string
	Result   *ItemDefinition
}

// Matches reports whether the operand IDs a and b satisfy the recipe. The
// pair is unordered, so (E1, E2) and (E2, E1) match the same recipe.
func (r *RecipeDefinition) Matches(a, b string) bool {
	if r == nil {
		return false
	}
	return (r.Requires[0] == a && r.Requires[1] == b) ||
		(r.Requires[0] == b && r.Requires[1] == a)
}
