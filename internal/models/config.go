package models

// Config is the tenant and environment configuration served by the daemon.
// JSON keys match what the settings endpoint exchanges; the same keys are
// used for ~/.automat/config.yaml.
type Config struct {
	TenantID            string   `json:"intune_tenant_id" yaml:"intune_tenant_id"`
	ClientID            string   `json:"intune_client_id" yaml:"intune_client_id"`
	ClientSecret        string   `json:"intune_client_secret" yaml:"intune_client_secret"`
	CertThumbprint      string   `json:"powershell_cert_thumbprint" yaml:"powershell_cert_thumbprint"`
	DefaultLogoPath     string   `json:"default_logo_path" yaml:"default_logo_path"`
	TempPackageDir      string   `json:"temp_package_dir" yaml:"temp_package_dir"`
	WintunerDownloadDir string   `json:"wintuner_download_dir" yaml:"wintuner_download_dir"`
	RequiredPermissions []string `json:"required_permissions" yaml:"required_permissions"`
}

// NewConfig creates a config with default paths and permissions.
func NewConfig() *Config {
	return &Config{
		DefaultLogoPath:     "logos/default_logo.png",
		TempPackageDir:      "temp_packages",
		WintunerDownloadDir: `.\wintuner_downloads`,
		RequiredPermissions: []string{"DeviceManagementApps.ReadWrite.All", "Group.Read.All"},
	}
}

// Merge returns a copy of c with every non-empty field of other applied on top.
func (c Config) Merge(other Config) Config {
	out := c
	if other.TenantID != "" {
		out.TenantID = other.TenantID
	}
	if other.ClientID != "" {
		out.ClientID = other.ClientID
	}
	if other.ClientSecret != "" {
		out.ClientSecret = other.ClientSecret
	}
	if other.CertThumbprint != "" {
		out.CertThumbprint = other.CertThumbprint
	}
	if other.DefaultLogoPath != "" {
		out.DefaultLogoPath = other.DefaultLogoPath
	}
	if other.TempPackageDir != "" {
		out.TempPackageDir = other.TempPackageDir
	}
	if other.WintunerDownloadDir != "" {
		out.WintunerDownloadDir = other.WintunerDownloadDir
	}
	if other.RequiredPermissions != nil {
		out.RequiredPermissions = append([]string(nil), other.RequiredPermissions...)
	}
	return out
}

// Masked returns a copy with the client secret hidden.
func (c Config) Masked() Config {
	out := c
	if out.ClientSecret != "" {
		out.ClientSecret = "••••••••"
	}
	return out
}
