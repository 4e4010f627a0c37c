// Package game runs one play session: the scene loop, the inventory and tool
// panels, and the end-of-run summary.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"trash-alchemy/assets"
	"trash-alchemy/internal/catalog"
	"trash-alchemy/internal/component"
	"trash-alchemy/internal/ecs"
	"trash-alchemy/internal/factory"
	"trash-alchemy/internal/gamemap"
	"trash-alchemy/internal/interact"
	"trash-alchemy/internal/inventory"
	"trash-alchemy/internal/render"
	"trash-alchemy/internal/scene"
	"trash-alchemy/internal/system"

	"github.com/gdamore/tcell/v2"
)

// GameState tracks the main state machine.
type GameState uint8

const (
	StatePlaying GameState = iota
	StateInventory
	StateCleared
)

// Options configures a Game.
type Options struct {
	Catalog       *catalog.Catalog
	Scenes        map[string]assets.SceneDef // defaults to assets.Scenes
	StartScene    string                     // defaults to assets.StartScene
	Seed          int64
	SpawnInterval int // turns between trash spawns; 0 disables the spawner
	MaxTrash      int
	Logger        *slog.Logger
}

// Game is the top-level orchestrator for one player.
type Game struct {
	screen   tcell.Screen
	renderer *render.Renderer
	opts     Options
	logger   *slog.Logger
	rng      *rand.Rand

	world    *ecs.World
	gmap     *gamemap.GameMap
	layout   *scene.Layout
	playerID ecs.EntityID

	inv       *inventory.Grid
	facade    *interact.Facade
	spawner   system.TrashSpawner
	collected map[string]bool // origins of placed items already picked up

	state    GameState
	messages []string
	runLog   RunLog
}

// New creates a Game on the local terminal.
func New(opts Options) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	g, err := NewWithScreen(screen, opts)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return g, nil
}

// NewWithScreen creates a Game on an initialised screen, e.g. one backed by
// an SSH session. The first run is ready to play when it returns.
func NewWithScreen(screen tcell.Screen, opts Options) (*Game, error) {
	if opts.Catalog == nil {
		return nil, errors.New("game: no catalog")
	}
	if opts.Scenes == nil {
		opts.Scenes = assets.Scenes
	}
	if opts.StartScene == "" {
		opts.StartScene = assets.StartScene
	}
	if _, ok := opts.Scenes[opts.StartScene]; !ok {
		return nil, fmt.Errorf("game: start scene %q: %w", opts.StartScene, scene.ErrBadLayout)
	}
	if err := scene.Validate(opts.Scenes, opts.Catalog.Items); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	g := &Game{
		screen:   screen,
		renderer: render.NewRenderer(screen),
		opts:     opts,
		logger:   logger.With("seed", opts.Seed),
		rng:      rand.New(rand.NewSource(opts.Seed)),
		spawner:  system.TrashSpawner{Interval: opts.SpawnInterval, Max: opts.MaxTrash},
	}
	if err := g.resetForRun(); err != nil {
		return nil, err
	}
	return g, nil
}

// resetForRun clears all per-run state and enters the start scene with an
// empty inventory.
func (g *Game) resetForRun() error {
	inv, err := inventory.New(inventory.OptionsFromCatalog(g.opts.Catalog, g.rng, g.logger))
	if err != nil {
		return fmt.Errorf("new inventory: %w", err)
	}
	g.inv = inv
	g.facade = interact.New(inv, g.opts.Catalog.Items, g.logger)
	g.collected = make(map[string]bool)
	g.state = StatePlaying
	g.messages = nil
	g.runLog = newRunLog(g.opts.Seed)
	g.spawner.Reset()
	return g.loadScene(g.opts.StartScene, 0)
}

// loadScene rebuilds the world for scene id. The player arrives on the
// portal marked entry, or on the scene's start marker when entry is zero.
// The inventory carries over untouched.
func (g *Game) loadScene(id string, entry rune) error {
	def, ok := g.opts.Scenes[id]
	if !ok {
		return fmt.Errorf("load scene %q: %w", id, scene.ErrBadLayout)
	}
	l, err := scene.Build(def)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}

	px, py := l.StartX, l.StartY
	if entry != 0 {
		x, y, ok := l.PortalAt(entry)
		if !ok {
			return fmt.Errorf("load scene %q: %w: no portal %q", id, scene.ErrBadLayout, entry)
		}
		px, py = x, y
	} else if !l.HasStart {
		return fmt.Errorf("load scene %q: %w: no start marker", id, scene.ErrBadLayout)
	}

	g.layout = l
	g.gmap = l.Map
	g.world = ecs.NewWorld()
	for _, p := range l.Portals {
		factory.NewPortal(g.world, p.Target, p.Entry, p.X, p.Y)
	}
	for _, s := range l.Stations {
		factory.NewStation(g.world, s.Kind, s.X, s.Y)
	}
	for _, it := range l.Items {
		if g.collected[it.Origin] {
			continue
		}
		factory.NewPickup(g.world, g.opts.Catalog.Items.MustLookup(it.ItemID), it.Origin, it.X, it.Y)
	}
	g.playerID = factory.NewPlayer(g.world, px, py)

	g.spawner.Reset()
	g.renderer.SetTheme(render.ThemeFor(l.ID))
	g.runLog.visit(l.ID)
	g.logger.Info("scene loaded", "scene", l.ID)
	g.addMessage(fmt.Sprintf("You arrive at the %s.", l.Name))
	return nil
}

// Run is the main game loop. Supports consecutive runs via Play Again.
func (g *Game) Run() error {
	defer g.screen.Fini()

	for {
		g.addMessage("Walk with hjkl or arrows. Pick up trash with , and open your bag with i.")
		for g.state != StateCleared {
			g.draw()

			ev := g.screen.PollEvent()
			switch ev := ev.(type) {
			case nil:
				return nil // screen finalised
			case *tcell.EventResize:
				g.screen.Sync()
				continue
			case *tcell.EventKey:
				action := keyToAction(ev)
				if action == ActionQuit {
					saveRunLog(g.runLog, g.logger)
					return nil
				}
				g.processAction(action)
			}
		}

		g.runLog.Cleared = true
		saveRunLog(g.runLog, g.logger)
		if !g.showEndScreen() {
			return nil
		}
		if err := g.resetForRun(); err != nil {
			return err
		}
	}
}

func (g *Game) draw() {
	g.renderer.DrawFrame(g.world, g.gmap, g.playerID)
	g.renderer.DrawHUD(g.status(), g.messages)
}

func (g *Game) status() render.Status {
	return render.Status{
		Scene:    g.layout.Name,
		Items:    g.inv.Count(),
		Capacity: g.inv.Width() * g.inv.ActiveHeight(),
		Merger:   g.inv.MergerUnlocked(),
		Turn:     g.runLog.TurnsPlayed,
	}
}

// processAction handles one player action and advances the turn when the
// action spent one.
func (g *Game) processAction(action Action) {
	turnUsed := false

	switch action {
	case ActionWait:
		turnUsed = true
	case ActionPickup:
		turnUsed = g.tryPickup()
	case ActionInteract:
		if st := interact.Reachable(g.world, component.CStation, g.playerPosition()); st != ecs.NilEntity {
			g.useStation(st)
		} else {
			turnUsed = g.tryPickup()
		}
	case ActionInventory:
		g.runInventoryScreen()
	default:
		dx, dy := actionToDelta(action)
		if dx == 0 && dy == 0 {
			return
		}
		result, target := system.TryMove(g.world, g.gmap, g.playerID, dx, dy)
		switch result {
		case system.MoveOK:
			turnUsed = true
		case system.MoveInteract:
			g.useStation(target)
		case system.MovePortal:
			g.travel(target)
			return
		case system.MoveBlocked:
			// no message for walking into walls
		}
	}

	if g.inv.Cleared() {
		g.state = StateCleared
		return
	}
	if turnUsed {
		g.endTurn()
	}
}

// endTurn advances the turn counter and lets the spawner act.
func (g *Game) endTurn() {
	g.runLog.TurnsPlayed++
	id := g.spawner.Tick(g.world, g.gmap, g.layout.TrashArea, g.opts.Catalog.Trash, g.rng)
	if id != ecs.NilEntity {
		p := g.world.Get(id, component.CPickup).(component.Pickup)
		g.logger.Debug("trash spawned", "item", p.ItemID, "scene", g.layout.ID)
	}
}

// tryPickup picks up the nearest item within reach. Returns true when a
// turn was spent.
func (g *Game) tryPickup() bool {
	id := interact.Reachable(g.world, component.CPickup, g.playerPosition())
	if id == ecs.NilEntity {
		g.addMessage("Nothing to pick up here.")
		return false
	}
	p := g.world.Get(id, component.CPickup).(component.Pickup)
	item, err := g.facade.TryPickUp(g.world, id)
	if err != nil {
		g.addMessage(interact.Explain(err))
		return false
	}
	if p.Origin != "" {
		g.collected[p.Origin] = true
	} else {
		g.runLog.TrashCollected++
	}
	g.addMessage(fmt.Sprintf("You pick up %s.", item.Label()))
	return true
}

// useStation opens the merger or crafter panel on top of the inventory.
func (g *Game) useStation(id ecs.EntityID) {
	st, ok := g.world.Get(id, component.CStation).(component.Station)
	if !ok {
		return
	}
	if st.Kind == component.StationMerger && !g.inv.MergerUnlocked() {
		g.addMessage(interact.Explain(inventory.ErrFeatureLocked))
	}
	g.facade.OpenTool(st.Kind)
	g.runInventoryScreen()
}

// travel loads the scene a portal leads to.
func (g *Game) travel(id ecs.EntityID) {
	p, ok := g.world.Get(id, component.CPortal).(component.Portal)
	if !ok {
		return
	}
	if err := g.loadScene(p.Target, p.Entry); err != nil {
		g.logger.Error("portal failed", "target", p.Target, "error", err)
		g.addMessage("The way is blocked.")
	}
}

func (g *Game) playerPosition() component.Position {
	c := g.world.Get(g.playerID, component.CPosition)
	if c == nil {
		return component.Position{}
	}
	return c.(component.Position)
}

func (g *Game) addMessage(msg string) {
	g.messages = append(g.messages, msg)
	if len(g.messages) > 50 {
		g.messages = g.messages[len(g.messages)-50:]
	}
}

// putText writes a string to the screen at (x, y), one column per rune.
func (g *Game) putText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		g.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// showEndScreen renders the run summary and returns true if the player
// wants to play again, false to quit.
func (g *Game) showEndScreen() bool {
	totalDecomposed := 0
	for _, n := range g.runLog.Decomposed {
		totalDecomposed += n
	}
	totalCrafts := 0
	for _, n := range g.runLog.Crafts {
		totalCrafts += n
	}

	white := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	gold := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	gray := tcell.StyleDefault.Foreground(tcell.ColorGray)
	dim := tcell.StyleDefault.Foreground(tcell.ColorLightYellow)
	green := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	red := tcell.StyleDefault.Foreground(tcell.ColorRed)

	for {
		g.screen.Clear()
		sw, _ := g.screen.Size()

		sep := func(y int) {
			for x := 0; x < sw; x++ {
				g.screen.SetContent(x, y, '─', nil, gray)
			}
		}
		// label prints a left-aligned key at column 2 and value at column 22.
		label := func(y int, l, v string) {
			g.putText(2, y, l, dim)
			g.putText(22, y, v, white)
		}

		y := 1
		sep(y)
		y += 2

		g.putText(2, y, "THE STONE IS WHOLE", gold)
		badge := "[CLEARED]"
		g.putText(sw-len(badge)-1, y, badge, green)
		y += 2

		label(y, "Turns Played:", fmt.Sprintf("%d", g.runLog.TurnsPlayed))
		y++
		label(y, "Scenes Visited:", fmt.Sprintf("%d", len(g.runLog.ScenesVisited)))
		y += 2
		label(y, "Trash Collected:", fmt.Sprintf("%d", g.runLog.TrashCollected))
		y++
		label(y, "Broken Down:", fmt.Sprintf("%d", totalDecomposed))
		y++
		label(y, "Merges:", fmt.Sprintf("%d", g.runLog.Merges))
		y++
		label(y, "Crafts:", fmt.Sprintf("%d", totalCrafts))
		y++
		label(y, "Bag Expansions:", fmt.Sprintf("%d", g.runLog.Expansions))
		y += 2

		sep(y)
		y += 2

		g.putText(2, y, "[R] Play Again", green)
		g.putText(18, y, "[Q] Quit", red)

		g.screen.Show()

		ev := g.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return false
		case *tcell.EventResize:
			g.screen.Sync()
			continue // redraw on resize
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'r', 'R':
					return true
				case 'q', 'Q':
					return false
				}
			case tcell.KeyEscape:
				return false
			}
		}
	}
}
