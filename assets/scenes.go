package assets

// Scene layout legend:
//
//	#  wall           .  floor          :  sand
//	"  grass          ~  water
//	@  player start   M  merger         C  crafter
//	a-z portal (see SceneDef.Portals)   1-9 placed item (see SceneDef.Items)
//
// Portals, stations, items and the start marker stand on floor.

// PortalDef links a portal marker to the scene it loads. The player arrives
// on the marker Entry in the target scene.
type PortalDef struct {
	Target string
	Entry  rune
}

// Area is an inclusive rectangle of tiles.
type Area struct {
	X1, Y1, X2, Y2 int
}

// SceneDef is one hand-authored scene.
type SceneDef struct {
	ID      string
	Name    string
	Rows    []string
	Portals map[rune]PortalDef
	Items   map[rune]string // marker → item ID, collected once per run
	// TrashArea bounds where the spawner drops trash. A zero area disables it.
	TrashArea Area
}

// StartScene is loaded at the beginning of every run.
const StartScene = "beach"

// Scenes lists every scene by ID.
var Scenes = map[string]SceneDef{
	"beach": {
		ID:   "beach",
		Name: "Littered Beach",
		Rows: []string{
			"##############################",
			"#::::::::::::::::::::::::::::#",
			"#::::::::::::::::::::::::::::#",
			"#::::::::::::::::::::::::::::#",
			"#::::::::::::::@:::::::::::::a",
			"#::::::::::::::::::::::::::::#",
			"#::::::::::::::::::::::::::::#",
			"#~~~~~~~~~~~~~~~~~~~~~~~~~~~~#",
			"##############################",
		},
		Portals: map[rune]PortalDef{
			'a': {Target: "town", Entry: 'a'},
		},
		TrashArea: Area{X1: 1, Y1: 1, X2: 28, Y2: 6},
	},
	"town": {
		ID:   "town",
		Name: "Old Town Square",
		Rows: []string{
			"############################",
			"#\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"#",
			"#\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"#",
			"a\"\"\"\"\"\"\"\"\"\"\"\"\".\"\"\"\"\"\"\"\"\"\"\"\"b",
			"#\"\"\"\"\"\"\"\"\"\"\"\"C\"\"\"\"\"\"\"\"\"\"\"\"\"#",
			"#\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"#",
			"############################",
		},
		Portals: map[rune]PortalDef{
			'a': {Target: "beach", Entry: 'a'},
			'b': {Target: "workshop", Entry: 'b'},
		},
		TrashArea: Area{X1: 1, Y1: 1, X2: 26, Y2: 5},
	},
	"workshop": {
		ID:   "workshop",
		Name: "Abandoned Workshop",
		Rows: []string{
			"################",
			"#..............#",
			"#..M.......1...#",
			"b..............#",
			"#..............#",
			"################",
		},
		Portals: map[rune]PortalDef{
			'b': {Target: "town", Entry: 'b'},
		},
		Items: map[rune]string{
			'1': "merger_blueprint",
		},
	},
}
