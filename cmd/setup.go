package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"tubescout/internal/storage"
	"tubescout/internal/ui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard for Tubescout",
	Long:  `Configure API keys, create the export directory, and optionally set up Google Cloud for exports and secrets.`,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	fmt.Println(ui.TitleStyle.Render("📈 Tubescout Setup"))

	steps := []struct {
		name string
		fn   func() error
	}{
		{"Creating directories", createDirectories},
		{"Configuring environment", configureEnv},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}

	return nil
}

func createDirectories() error {
	if err := storage.NewLocalStorage("exports").EnsureDir(); err != nil {
		return err
	}
	fmt.Println(ui.SuccessStyle.Render("✓ Created exports/"))
	return nil
}

func configureEnv() error {
	if _, err := os.Stat(".env"); err == nil {
		var overwrite bool
		if err := huh.NewConfirm().
			Title("Found existing .env file").
			Description("Overwrite?").
			Value(&overwrite).
			Run(); err != nil {
			return err
		}
		if !overwrite {
			fmt.Println(ui.InfoStyle.Render("Kept existing .env"))
			return nil
		}
	}

	env := make(map[string]string)

	if err := configureGCP(env); err != nil {
		return err
	}

	if err := configureRequiredKeys(env); err != nil {
		return err
	}

	if err := configureOptionalKeys(env); err != nil {
		return err
	}

	return writeEnvFile(env)
}

func configureGCP(env map[string]string) error {
	var setupGCP bool
	if err := huh.NewConfirm().
		Title("Setup Google Cloud?").
		Description("Optional: store exports in a bucket and keep the API key in Secret Manager").
		Value(&setupGCP).
		Run(); err != nil {
		return err
	}

	if !setupGCP {
		return nil
	}

	if !commandExists("gcloud") {
		fmt.Println(ui.WarnStyle.Render("gcloud CLI not found - install from https://cloud.google.com/sdk/docs/install"))
		return nil
	}

	project, err := getOrCreateGCPProject()
	if err != nil {
		fmt.Println(ui.WarnStyle.Render(fmt.Sprintf("GCP setup skipped: %v", err)))
		return nil
	}

	env["GOOGLE_CLOUD_PROJECT"] = project

	if err := enableGCPAPIs(project); err != nil {
		fmt.Println(ui.WarnStyle.Render(fmt.Sprintf("API enablement failed: %v", err)))
	}

	if err := setupExportBucket(env, project); err != nil {
		fmt.Println(ui.WarnStyle.Render(fmt.Sprintf("Export bucket skipped: %v", err)))
	}

	return nil
}

func getOrCreateGCPProject() (string, error) {
	existing := getActiveProject()

	var choice string
	options := []huh.Option[string]{
		huh.NewOption("Create new project", "new"),
	}

	if existing != "" {
		options = append([]huh.Option[string]{
			huh.NewOption(fmt.Sprintf("Use current: %s", existing), existing),
		}, options...)
	}

	options = append(options, huh.NewOption("Enter project ID manually", "manual"))

	if err := huh.NewSelect[string]().
		Title("Google Cloud Project").
		Options(options...).
		Value(&choice).
		Run(); err != nil {
		return "", err
	}

	switch choice {
	case "new":
		return createGCPProject()
	case "manual":
		var projectID string
		if err := huh.NewInput().
			Title("Project ID").
			Value(&projectID).
			Validate(ui.Required("Project ID")).
			Run(); err != nil {
			return "", err
		}
		return strings.TrimSpace(projectID), nil
	default:
		return choice, nil
	}
}

func getActiveProject() string {
	out, err := exec.Command("gcloud", "config", "get-value", "project").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func createGCPProject() (string, error) {
	var projectID string
	if err := huh.NewInput().
		Title("New Project ID").
		Description("Must be globally unique, 6-30 chars, lowercase letters, digits, hyphens").
		Placeholder("tubescout-12345").
		Value(&projectID).
		Validate(func(s string) error {
			if len(s) < 6 || len(s) > 30 {
				return errors.New("must be 6-30 characters")
			}
			return nil
		}).
		Run(); err != nil {
		return "", err
	}

	err := ui.RunWithSpinner("Creating project", func() error {
		return runSetupCmd("gcloud", "projects", "create", projectID)
	})
	if err != nil {
		return "", err
	}

	_ = runSetupCmd("gcloud", "config", "set", "project", projectID)

	return projectID, nil
}

func enableGCPAPIs(project string) error {
	apis := []string{
		"youtube.googleapis.com",
		"secretmanager.googleapis.com",
		"storage.googleapis.com",
	}

	return ui.RunWithSpinner("Enabling APIs", func() error {
		args := append([]string{"services", "enable"}, apis...)
		args = append(args, "--project", project)
		return runSetupCmd("gcloud", args...)
	})
}

func setupExportBucket(env map[string]string, project string) error {
	var setup bool
	if err := huh.NewConfirm().
		Title("Store exports in Cloud Storage?").
		Description("Exports are written to ./exports otherwise").
		Value(&setup).
		Run(); err != nil || !setup {
		return err
	}

	bucket := project + "-exports"
	if err := huh.NewInput().
		Title("Bucket name").
		Value(&bucket).
		Validate(ui.Required("Bucket name")).
		Run(); err != nil {
		return err
	}
	bucket = strings.TrimSpace(bucket)

	err := ui.RunWithSpinner("Creating bucket gs://"+bucket, func() error {
		return runSetupCmd("gcloud", "storage", "buckets", "create", "gs://"+bucket, "--project", project)
	})
	if err != nil {
		return err
	}

	env["GCS_BUCKET"] = bucket
	return nil
}

func configureRequiredKeys(env map[string]string) error {
	var youtubeKey string

	if err := huh.NewInput().
		Title("YouTube Data API Key").
		Description("https://console.cloud.google.com/apis/credentials").
		EchoMode(huh.EchoModePassword).
		Value(&youtubeKey).
		Validate(ui.Required("YouTube Data API Key")).
		Run(); err != nil {
		return err
	}
	youtubeKey = strings.TrimSpace(youtubeKey)

	project := env["GOOGLE_CLOUD_PROJECT"]
	if project == "" {
		env["YOUTUBE_API_KEY"] = youtubeKey
		return nil
	}

	var useSecret bool
	if err := huh.NewConfirm().
		Title("Keep the key in Secret Manager?").
		Description("Stored as secret youtube-api-key instead of in .env").
		Value(&useSecret).
		Run(); err != nil {
		return err
	}
	if !useSecret {
		env["YOUTUBE_API_KEY"] = youtubeKey
		return nil
	}

	err := ui.RunWithSpinner("Storing secret", func() error {
		return storeSecret(project, "youtube-api-key", youtubeKey)
	})
	if err != nil {
		fmt.Println(ui.WarnStyle.Render(fmt.Sprintf("Secret Manager failed, writing key to .env: %v", err)))
		env["YOUTUBE_API_KEY"] = youtubeKey
		return nil
	}
	env["YOUTUBE_API_KEY_SECRET"] = "youtube-api-key"
	return nil
}

func storeSecret(project, name, value string) error {
	cmd := exec.Command("gcloud", "secrets", "create", name,
		"--project", project, "--replication-policy", "automatic", "--data-file", "-")
	cmd.Stdin = strings.NewReader(value)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %s", err, stderr.String())
	}
	return nil
}

func configureOptionalKeys(env map[string]string) error {
	if err := configureGroq(env); err != nil {
		return err
	}

	if err := configureUploadService(env); err != nil {
		return err
	}

	return nil
}

func configureGroq(env map[string]string) error {
	var setup bool
	if err := huh.NewConfirm().
		Title("Setup Groq?").
		Description("For video idea suggestions (optional)").
		Value(&setup).
		Run(); err != nil {
		return err
	}

	if !setup {
		return nil
	}

	var apiKey string
	if err := huh.NewInput().
		Title("GROQ API Key").
		Description("https://console.groq.com/keys").
		EchoMode(huh.EchoModePassword).
		Value(&apiKey).
		Run(); err != nil {
		return err
	}

	apiKey = strings.TrimSpace(apiKey)
	if apiKey != "" {
		env["GROQ_API_KEY"] = apiKey
	}
	return nil
}

func configureUploadService(env map[string]string) error {
	var setup bool
	if err := huh.NewConfirm().
		Title("Setup upload service?").
		Description("For publishing videos to authorized channels (optional)").
		Value(&setup).
		Run(); err != nil {
		return err
	}

	if !setup {
		return nil
	}

	var baseURL, token string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Upload service URL").
				Placeholder("http://localhost:8090").
				Value(&baseURL),
			huh.NewInput().
				Title("Upload service token").
				Description("Leave empty if the service is not protected").
				EchoMode(huh.EchoModePassword).
				Value(&token),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		env["UPLOAD_SERVICE_URL"] = baseURL
	}
	if token = strings.TrimSpace(token); token != "" {
		env["UPLOAD_SERVICE_TOKEN"] = token
	}
	return nil
}

func writeEnvFile(env map[string]string) error {
	f, err := os.Create(".env")
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	order := []string{
		"GOOGLE_CLOUD_PROJECT",
		"YOUTUBE_API_KEY",
		"YOUTUBE_API_KEY_SECRET",
		"GROQ_API_KEY",
		"GCS_BUCKET",
		"UPLOAD_SERVICE_URL",
		"UPLOAD_SERVICE_TOKEN",
	}

	for _, key := range order {
		if val, ok := env[key]; ok && val != "" {
			_, _ = fmt.Fprintf(f, "%s=%s\n", key, val)
		}
	}

	fmt.Println(ui.SuccessStyle.Render("✓ Created .env file"))
	printNextSteps()
	return nil
}

func printNextSteps() {
	fmt.Println()
	fmt.Println(ui.TitleStyle.Render("Next steps:"))
	fmt.Println("  1. Check services: tubescout auth status")
	fmt.Println("  2. Run: tubescout trending --region US --chart")
	fmt.Println("  3. Or serve the dashboard API: tubescout serve")
}

func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func runSetupCmd(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %s", err, stderr.String())
	}
	return nil
}
