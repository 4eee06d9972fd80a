package window

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
)

// windowBDDTestContext holds state for one scenario
type windowBDDTestContext struct {
	registry   mapRegistry
	manager    *Manager
	remembered string
}

func (c *windowBDDTestContext) reset() {
	c.registry = mapRegistry{}
	c.manager = nil
	c.remembered = ""
}

func (c *windowBDDTestContext) wm() *Manager {
	if c.manager == nil {
		c.manager = NewManager(c.registry, WithPlacement(NewSeededPlacement(3, 5)))
	}
	return c.manager
}

func (c *windowBDDTestContext) windowFor(appID string) (types.Window, error) {
	windows := c.wm().ByApp(appID)
	if len(windows) != 1 {
		return types.Window{}, fmt.Errorf("expected exactly 1 window for %q, found %d", appID, len(windows))
	}
	return windows[0], nil
}

func (c *windowBDDTestContext) aRegistryWithApplications(list string) error {
	for _, appID := range strings.Split(list, ",") {
		appID = strings.TrimSpace(appID)
		c.registry[appID] = types.Descriptor{ID: appID, Title: appID}
	}
	return nil
}

func (c *windowBDDTestContext) hasADefaultSize(appID string, width, height int) error {
	desc, ok := c.registry[appID]
	if !ok {
		return fmt.Errorf("unknown application %q", appID)
	}
	size := types.FixedSize(width, height)
	desc.DefaultSize = &size
	c.registry[appID] = desc
	return nil
}

func (c *windowBDDTestContext) iOpen(appID string) error {
	c.wm().Open(appID, nil)
	return nil
}

func (c *windowBDDTestContext) iOpenWithFile(appID, fileName string) error {
	if _, ok := c.wm().Open(appID, types.Payload{"fileName": fileName}); !ok {
		return fmt.Errorf("open %q failed", appID)
	}
	return nil
}

func (c *windowBDDTestContext) iFocus(appID string) error {
	w, err := c.windowFor(appID)
	if err != nil {
		return err
	}
	c.wm().Focus(w.ID)
	return nil
}

func (c *windowBDDTestContext) iMinimize(appID string) error {
	w, err := c.windowFor(appID)
	if err != nil {
		return err
	}
	c.wm().ToggleMinimize(w.ID)
	return nil
}

func (c *windowBDDTestContext) iMaximize(appID string) error {
	w, err := c.windowFor(appID)
	if err != nil {
		return err
	}
	c.wm().ToggleMaximize(w.ID)
	return nil
}

func (c *windowBDDTestContext) iClose(appID string) error {
	w, err := c.windowFor(appID)
	if err != nil {
		return err
	}
	c.remembered = w.ID
	c.wm().Close(w.ID)
	return nil
}

func (c *windowBDDTestContext) iCloseRememberedAgain() error {
	if c.wm().Close(c.remembered) {
		return errors.New("second close should be a no-op")
	}
	return nil
}

func (c *windowBDDTestContext) iRememberTheWindowID(appID string) error {
	w, err := c.windowFor(appID)
	if err != nil {
		return err
	}
	c.remembered = w.ID
	return nil
}

func (c *windowBDDTestContext) iOpenTheStartMenu() error {
	c.wm().SetStartMenuOpen(true)
	return nil
}

func (c *windowBDDTestContext) thereAreWindowsFor(count int, appID string) error {
	if got := len(c.wm().ByApp(appID)); got != count {
		return fmt.Errorf("expected %d windows for %q, got %d", count, appID, got)
	}
	return nil
}

func (c *windowBDDTestContext) thereAreWindowsInTotal(count int) error {
	if got := len(c.wm().List()); got != count {
		return fmt.Errorf("expected %d windows, got %d", count, got)
	}
	return nil
}

func (c *windowBDDTestContext) theWindowHasZIndex(appID string, z int) error {
	w, err := c.windowFor(appID)
	if err != nil {
		return err
	}
	if w.ZIndex != z {
		return fmt.Errorf("expected z-index %d for %q, got %d", z, appID, w.ZIndex)
	}
	return nil
}

func (c *windowBDDTestContext) theWindowHasSize(appID string, width, height int) error {
	w, err := c.windowFor(appID)
	if err != nil {
		return err
	}
	if w.Size != types.FixedSize(width, height) {
		return fmt.Errorf("expected size %dx%d for %q, got %sx%s", width, height, appID, w.Size.Width, w.Size.Height)
	}
	return nil
}

func (c *windowBDDTestContext) theWindowFlag(appID, negation, flag string) error {
	w, err := c.windowFor(appID)
	if err != nil {
		return err
	}
	want := negation == ""
	var got bool
	switch flag {
	case "minimized":
		got = w.IsMinimized
	case "maximized":
		got = w.IsMaximized
	default:
		return fmt.Errorf("unknown flag %q", flag)
	}
	if got != want {
		return fmt.Errorf("expected %q %s=%v, got %v", appID, flag, want, got)
	}
	return nil
}

func (c *windowBDDTestContext) theNextZIndexIs(z int) error {
	if got := c.wm().Stats().NextZIndex; got != z {
		return fmt.Errorf("expected next z-index %d, got %d", z, got)
	}
	return nil
}

func (c *windowBDDTestContext) theTopmostWindowBelongsTo(appID string) error {
	top, ok := c.wm().Focused()
	if !ok {
		return errors.New("no visible window")
	}
	if top.App.ID != appID {
		return fmt.Errorf("expected topmost window of %q, got %q", appID, top.App.ID)
	}
	return nil
}

func (c *windowBDDTestContext) allWindowIDsAreDistinct() error {
	seen := map[string]bool{}
	for _, w := range c.wm().List() {
		if seen[w.ID] {
			return fmt.Errorf("duplicate window id %s", w.ID)
		}
		seen[w.ID] = true
	}
	return nil
}

func (c *windowBDDTestContext) theWindowIDDiffersFromRemembered(appID string) error {
	w, err := c.windowFor(appID)
	if err != nil {
		return err
	}
	if w.ID == c.remembered {
		return fmt.Errorf("window id %s was reused", w.ID)
	}
	return nil
}

func (c *windowBDDTestContext) theStartMenuIsClosed() error {
	if c.wm().StartMenuOpen() {
		return errors.New("start menu should be closed")
	}
	return nil
}

func TestWindowManagerBDD(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: func(ctx *godog.ScenarioContext) {
			testCtx := &windowBDDTestContext{}
			testCtx.reset()

			ctx.Before(func(goctx context.Context, sc *godog.Scenario) (context.Context, error) {
				testCtx.reset()
				return goctx, nil
			})

			// Background
			ctx.Step(`^a registry with applications "([^"]*)"$`, testCtx.aRegistryWithApplications)
			ctx.Step(`^"([^"]*)" has a default size of (\d+) by (\d+)$`, testCtx.hasADefaultSize)

			// Operations
			ctx.Step(`^I open "([^"]*)"$`, testCtx.iOpen)
			ctx.Step(`^I open "([^"]*)" with file "([^"]*)"$`, testCtx.iOpenWithFile)
			ctx.Step(`^I focus the "([^"]*)" window$`, testCtx.iFocus)
			ctx.Step(`^I minimize the "([^"]*)" window$`, testCtx.iMinimize)
			ctx.Step(`^I maximize the "([^"]*)" window$`, testCtx.iMaximize)
			ctx.Step(`^I close the "([^"]*)" window$`, testCtx.iClose)
			ctx.Step(`^I close the remembered window again$`, testCtx.iCloseRememberedAgain)
			ctx.Step(`^I remember the "([^"]*)" window id$`, testCtx.iRememberTheWindowID)
			ctx.Step(`^I open the start menu$`, testCtx.iOpenTheStartMenu)

			// Assertions
			ctx.Step(`^there (?:is|are) (\d+) windows? for "([^"]*)"$`, testCtx.thereAreWindowsFor)
			ctx.Step(`^there are (\d+) windows in total$`, testCtx.thereAreWindowsInTotal)
			ctx.Step(`^the "([^"]*)" window has z-index (\d+)$`, testCtx.theWindowHasZIndex)
			ctx.Step(`^the "([^"]*)" window has size (\d+) by (\d+)$`, testCtx.theWindowHasSize)
			ctx.Step(`^the "([^"]*)" window is (not )?(minimized|maximized)$`, testCtx.theWindowFlag)
			ctx.Step(`^the next z-index is (\d+)$`, testCtx.theNextZIndexIs)
			ctx.Step(`^the topmost window belongs to "([^"]*)"$`, testCtx.theTopmostWindowBelongsTo)
			ctx.Step(`^all window ids are distinct$`, testCtx.allWindowIDsAreDistinct)
			ctx.Step(`^the "([^"]*)" window id differs from the remembered one$`, testCtx.theWindowIDDiffersFromRemembered)
			ctx.Step(`^the start menu is closed$`, testCtx.theStartMenuIsClosed)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
