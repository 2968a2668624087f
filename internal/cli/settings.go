package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/automat-io/automat/internal/config"
	"github.com/automat-io/automat/internal/models"
	"github.com/automat-io/automat/internal/settingsclient"
)

var (
	flagSettingsReveal bool
	flagSettingsSecret bool
)

var settingsCmd = &cobra.Command{
	Use:     "settings",
	Aliases: []string{"config"},
	Short:   "Show or change the tenant configuration",
	Long: `Show or change the Intune tenant configuration held by the daemon.

The daemon is started if it is not running.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key=value ...]",
	Short: "Change configuration values",
	Long: `Change one or more configuration values, for example:

  automat settings set intune_tenant_id=contoso.onmicrosoft.com
  automat settings set required_permissions=DeviceManagementApps.ReadWrite.All,Group.Read.All
  automat settings set --secret

--secret prompts for the client secret without echoing it.`,
	RunE: runSettingsSet,
}

func init() {
	settingsShowCmd.Flags().BoolVar(&flagSettingsReveal, "reveal", false, "Show the client secret")
	settingsSetCmd.Flags().BoolVar(&flagSettingsSecret, "secret", false, "Prompt for the client secret")

	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsShowCmd)
}

// settingKeys lists the configuration keys in display order.
var settingKeys = []string{
	"intune_tenant_id",
	"intune_client_id",
	"intune_client_secret",
	"powershell_cert_thumbprint",
	"default_logo_path",
	"temp_package_dir",
	"wintuner_download_dir",
	"required_permissions",
}

func newSettingsClient(ctx context.Context) (*settingsclient.Client, error) {
	info, err := EnsureDaemon(ctx)
	if err != nil {
		return nil, err
	}
	return settingsclient.New(info.BaseURL()), nil
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	client, err := newSettingsClient(cmd.Context())
	if err != nil {
		return err
	}
	cfg, err := client.LoadConfig(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !flagSettingsReveal {
		cfg = cfg.Masked()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, styleBrand.Render("Tenant"))
	for _, k := range settingKeys {
		v, _ := getSetting(cfg, k)
		if v == "" {
			v = styleHint.Render("(not set)")
		}
		fmt.Fprintf(out, "  %s %s\n", styleLabel.Render(pad(k, 28)), styleValue.Render(v))
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return nil // Non-fatal: skip local settings
	}
	key := styleError.Render("missing")
	if settings.AI.APIKey != "" {
		key = styleSuccess.Render("set")
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, styleBrand.Render("Assistant"))
	fmt.Fprintf(out, "  %s %s\n", styleLabel.Render(pad("model", 28)), styleValue.Render(settings.AI.Model))
	fmt.Fprintf(out, "  %s %s\n", styleLabel.Render(pad("base_url", 28)), styleValue.Render(settings.AI.BaseURL))
	fmt.Fprintf(out, "  %s %s\n", styleLabel.Render(pad("api_key", 28)), key)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !flagSettingsSecret {
		return fmt.Errorf("nothing to set: pass key=value pairs or --secret")
	}

	client, err := newSettingsClient(cmd.Context())
	if err != nil {
		return err
	}
	return setSettings(cmd.Context(), client, client, args, flagSettingsSecret, cmd.InOrStdin(), cmd.OutOrStdout())
}

// setSettings applies key=value pairs (and the prompted secret, if asked for)
// to the stored configuration.
func setSettings(ctx context.Context, loader settingsclient.Loader, saver settingsclient.Saver, args []string, askSecret bool, in io.Reader, out io.Writer) error {
	cfg, err := loader.LoadConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("invalid argument %q: expected key=value", arg)
		}
		if err := setSetting(&cfg, strings.TrimSpace(k), strings.TrimSpace(v)); err != nil {
			return err
		}
	}

	if askSecret {
		secret, err := readSecret(in, out, "Client secret: ")
		if err != nil {
			return err
		}
		cfg.ClientSecret = secret
	}

	if _, err := saver.SaveConfig(ctx, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Fprintln(out, styleSuccess.Render("Configuration saved successfully!"))
	return nil
}

// readSecret reads a line without echo when in is a terminal.
func readSecret(in io.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("failed to read secret: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func getSetting(cfg models.Config, key string) (string, bool) {
	switch key {
	case "intune_tenant_id":
		return cfg.TenantID, true
	case "intune_client_id":
		return cfg.ClientID, true
	case "intune_client_secret":
		return cfg.ClientSecret, true
	case "powershell_cert_thumbprint":
		return cfg.CertThumbprint, true
	case "default_logo_path":
		return cfg.DefaultLogoPath, true
	case "temp_package_dir":
		return cfg.TempPackageDir, true
	case "wintuner_download_dir":
		return cfg.WintunerDownloadDir, true
	case "required_permissions":
		return strings.Join(cfg.RequiredPermissions, ", "), true
	default:
		return "", false
	}
}

func setSetting(cfg *models.Config, key, value string) error {
	switch key {
	case "intune_tenant_id":
		cfg.TenantID = value
	case "intune_client_id":
		cfg.ClientID = value
	case "intune_client_secret":
		cfg.ClientSecret = value
	case "powershell_cert_thumbprint":
		cfg.CertThumbprint = value
	case "default_logo_path":
		cfg.DefaultLogoPath = value
	case "temp_package_dir":
		cfg.TempPackageDir = value
	case "wintuner_download_dir":
		cfg.WintunerDownloadDir = value
	case "required_permissions":
		cfg.RequiredPermissions = splitList(value)
	default:
		return fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(settingKeys, ", "))
	}
	return nil
}

func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
