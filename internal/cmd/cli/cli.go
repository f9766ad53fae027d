// Package cli wires the engine behind a small terminal client: list your
// campaigns, open a campaign or session, and run lifecycle actions against
// it.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/partykeep/partykeep/internal/access"
	"github.com/partykeep/partykeep/internal/api"
	"github.com/partykeep/partykeep/internal/auth"
	"github.com/partykeep/partykeep/internal/domain"
	"github.com/partykeep/partykeep/internal/engine"
	"github.com/partykeep/partykeep/internal/orchestrator"
	platformcmd "github.com/partykeep/partykeep/internal/platform/cmd"
	"github.com/partykeep/partykeep/internal/state"
	"github.com/partykeep/partykeep/internal/state/store"
	memorystore "github.com/partykeep/partykeep/internal/state/store/memory"
	sqlitestore "github.com/partykeep/partykeep/internal/state/store/sqlite"
)

// Config holds the CLI configuration.
type Config struct {
	APIURL         string `env:"PARTYKEEP_API_URL" envDefault:"http://localhost:8080"`
	AccessToken    string `env:"PARTYKEEP_ACCESS_TOKEN"`
	CachePath      string `env:"PARTYKEEP_CACHE_PATH"`
	TimeoutSeconds int    `env:"PARTYKEEP_TIMEOUT_SECONDS" envDefault:"10"`
}

// ParseConfig loads env defaults and applies flag overrides.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, []string, error) {
	var cfg Config
	err := platformcmd.ParseConfigFromArgs(&cfg, fs, args, func(cfg *Config, fs *flag.FlagSet) {
		fs.StringVar(&cfg.APIURL, "api-url", cfg.APIURL, "Partykeep API base URL")
		fs.StringVar(&cfg.AccessToken, "token", cfg.AccessToken, "access token")
		fs.StringVar(&cfg.CachePath, "cache", cfg.CachePath, "warm cache path (empty for in-memory)")
	})
	if err != nil {
		return Config{}, nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, fs.Args(), nil
}

// App bundles the wired engine pieces for one CLI run.
type App struct {
	Campaigns *engine.CampaignController
	Sessions  *engine.SessionController
	Runner    *orchestrator.Runner
	Identity  *auth.Source

	warm store.Store
	out  io.Writer
}

// NewApp wires the API client, caches, and controllers from config.
func NewApp(cfg Config, out io.Writer) (*App, error) {
	identity := auth.NewSource()
	if strings.TrimSpace(cfg.AccessToken) != "" {
		if _, err := identity.SignIn(cfg.AccessToken); err != nil {
			return nil, fmt.Errorf("sign in: %w", err)
		}
	}

	var warm store.Store
	if strings.TrimSpace(cfg.CachePath) != "" {
		opened, err := sqlitestore.Open(cfg.CachePath)
		if err != nil {
			return nil, fmt.Errorf("open warm cache: %w", err)
		}
		warm = opened
	} else {
		warm = memorystore.New()
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := api.NewClient(cfg.APIURL, identity.Token, &http.Client{Timeout: timeout})

	cache := state.NewCache()
	runner := orchestrator.NewRunner()

	return &App{
		Campaigns: engine.NewCampaignController(client, cache, warm, runner, identity),
		Sessions:  engine.NewSessionController(client, client, cache, warm, runner, identity),
		Runner:    runner,
		Identity:  identity,
		warm:      warm,
		out:       out,
	}, nil
}

// Close releases the warm cache store.
func (a *App) Close() error {
	return a.warm.Close()
}

// Run executes one CLI command.
func Run(ctx context.Context, cfg Config, args []string, out io.Writer) error {
	app, err := NewApp(cfg, out)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			fmt.Fprintf(out, "close warm cache: %v\n", err)
		}
	}()
	return app.Dispatch(ctx, args)
}

// Dispatch routes one command to its handler.
func (a *App) Dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: %s <campaigns|campaign|session> [args]", platformcmd.ServiceCLI)
	}

	switch args[0] {
	case "campaigns":
		return a.listCampaigns(ctx)
	case "campaign":
		id, err := parseID(args[1:], "campaign")
		if err != nil {
			return err
		}
		return a.showCampaign(ctx, id)
	case "session":
		id, err := parseID(args[1:], "session")
		if err != nil {
			return err
		}
		return a.showSession(ctx, id)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func parseID(args []string, noun string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%s id is required", noun)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", noun, args[0])
	}
	return id, nil
}

func (a *App) listCampaigns(ctx context.Context) error {
	campaigns, result := a.Campaigns.ListCampaigns(ctx)
	if !result.Success {
		return fmt.Errorf("list campaigns: %s", result.Err.Message)
	}
	if len(campaigns) == 0 {
		fmt.Fprintln(a.out, "no campaigns")
		return nil
	}
	for _, campaign := range campaigns {
		fmt.Fprintf(a.out, "%d\t%s\t%s\n", campaign.ID, campaign.Title, domain.VisibilityLabel(campaign.Visibility))
	}
	return nil
}

func (a *App) showCampaign(ctx context.Context, campaignID int64) error {
	if result := a.Campaigns.Open(ctx, campaignID); !result.Success {
		return fmt.Errorf("open campaign %d: %s", campaignID, result.Err.Message)
	}
	defer a.Campaigns.Close()

	snapshot, _ := a.Campaigns.Snapshot()
	fmt.Fprintf(a.out, "campaign %d: %s (%s)\n", snapshot.Campaign.ID, snapshot.Campaign.Title, domain.VisibilityLabel(snapshot.Campaign.Visibility))
	fmt.Fprintf(a.out, "role: %s\taccess: %s\n", domain.RoleLabel(a.Campaigns.Role()), access.ModeLabel(a.Campaigns.AccessMode()))
	if code, err := a.Campaigns.InviteCode(); err == nil && code != "" {
		fmt.Fprintf(a.out, "invite code: %s\n", code)
	}
	fmt.Fprintf(a.out, "members: %d\n", len(snapshot.Members))
	for _, member := range snapshot.Members {
		fmt.Fprintf(a.out, "  user %d\t%s\n", member.UserID, domain.RoleLabel(member.Role))
	}
	if a.Campaigns.CanSubmitJoinRequest() {
		fmt.Fprintln(a.out, "you may request to join this campaign")
	}
	return nil
}

func (a *App) showSession(ctx context.Context, sessionID int64) error {
	if result := a.Sessions.Open(ctx, sessionID); !result.Success {
		return fmt.Errorf("open session %d: %s", sessionID, result.Err.Message)
	}
	defer a.Sessions.Close()

	snapshot, _ := a.Sessions.Snapshot()
	fmt.Fprintf(a.out, "session %d: %s (%s)\n", snapshot.Session.ID, snapshot.Session.Title, domain.SessionStatusLabel(snapshot.Session.Status))
	fmt.Fprintf(a.out, "role: %s\taccess: %s\n", domain.RoleLabel(a.Sessions.Role()), access.ModeLabel(a.Sessions.AccessMode()))
	fmt.Fprintf(a.out, "participants: %d", len(snapshot.Participants))
	if snapshot.Session.MaxPlayers > 0 {
		fmt.Fprintf(a.out, " (max %d players)", snapshot.Session.MaxPlayers)
	}
	fmt.Fprintln(a.out)
	for _, participant := range snapshot.Participants {
		name := participant.CharacterName
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(a.out, "  user %d\t%s\t%s\t%s\n", participant.UserID, domain.RoleLabel(participant.Role), domain.ParticipantStatusLabel(participant.Status), name)
	}
	if a.Sessions.CanJoin() {
		fmt.Fprintln(a.out, "you may join this session")
	}
	return nil
}
