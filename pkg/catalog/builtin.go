package catalog

// builtinProducts is the default assortment: household cleaning, storage and
// textile goods for shelves plus hanging goods for rails.
var builtinProducts = []Product{
	{ID: "p1", Name: "Degreasing dish soap", Category: "cleaning", Width: 10, Height: 25, Color: "#f97316"},
	{ID: "p2", Name: "Lemon toilet cleaner", Category: "cleaning", Width: 12, Height: 28, Color: "#eab308"},
	{ID: "p3", Name: "Multi-purpose cleaner", Category: "cleaning", Width: 15, Height: 30, Color: "#22c55e"},
	{ID: "p4", Name: "Sponge scrubbers (3 pack)", Category: "cleaning", Width: 15, Height: 10, Color: "#fcd34d"},

	{ID: "p5", Name: "Clear storage box (30L)", Category: "storage", Width: 40, Height: 30, Color: "#3b82f6"},
	{ID: "p6", Name: "Drawer storage cabinet", Category: "storage", Width: 35, Height: 45, Color: "#6366f1"},
	{ID: "p7", Name: "Desktop organizer", Category: "storage", Width: 20, Height: 15, Color: "#8b5cf6"},
	{ID: "p8", Name: "Clothes hangers (10 pack)", Category: "storage", Width: 42, Height: 20, Color: "#a855f7"},

	{ID: "p9", Name: "Cotton bath towel", Category: "textile", Width: 30, Height: 10, Color: "#f472b6"},
	{ID: "p10", Name: "Striped hand towel", Category: "textile", Width: 15, Height: 5, Color: "#fb7185"},
	{ID: "p11", Name: "All-season cushion", Category: "textile", Width: 45, Height: 45, Color: "#f87171"},
	{ID: "p12", Name: "Cotton bed sheet (1.8m)", Category: "textile", Width: 35, Height: 8, Color: "#ef4444"},

	{ID: "h1", Name: "Hook - stainless spatula", Category: "hanging", Width: 8, Height: 30, Color: "#8b5cf6", DisplayType: Hanging},
	{ID: "h2", Name: "Hook - kitchen towel", Category: "hanging", Width: 12, Height: 20, Color: "#a78bfa", DisplayType: Hanging},
	{ID: "h3", Name: "Hook - small strainer", Category: "hanging", Width: 10, Height: 25, Color: "#c084fc", DisplayType: Hanging},
	{ID: "h4", Name: "Hook - keychain", Category: "hanging", Width: 6, Height: 15, Color: "#d8b4fe", DisplayType: Hanging},
	{ID: "h5", Name: "Hook - storage bag", Category: "hanging", Width: 15, Height: 35, Color: "#14b8a6", DisplayType: Hanging},
}

// Builtin returns the default catalog.
func Builtin() *Catalog {
	c, err := New(builtinProducts)
	if err != nil {
		panic("catalog: invalid builtin products: " + err.Error())
	}
	return c
}
