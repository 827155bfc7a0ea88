package symbols

// Module represents one imported module's exported surface (§4.2 "module
// aliases are registered in a global side table").
type Module struct {
	Path     string
	Exported map[string]*SymbolEntry
}

// NewModule creates an empty module record.
func NewModule(path string) *Module {
	return &Module{Path: path, Exported: make(map[string]*SymbolEntry)}
}

// AliasTable maps an alias identifier to the module it refers to. It is
// owned by the analyzer instance, not a process-wide singleton (spec.md §9
// "global state").
type AliasTable struct {
	aliases map[string]*Module
}

// NewAliasTable creates an empty alias table.
func NewAliasTable() *AliasTable {
	return &AliasTable{aliases: make(map[string]*Module)}
}

// Register binds alias -> module, overwriting any previous binding (a
// re-import under the same alias is a declaration-analyzer concern, not a
// table-level invariant).
func (t *AliasTable) Register(alias string, mod *Module) {
	t.aliases[alias] = mod
}

// Resolve looks up a module by alias.
func (t *AliasTable) Resolve(alias string) (*Module, bool) {
	m, ok := t.aliases[alias]
	return m, ok
}
