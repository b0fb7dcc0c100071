package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/op/go-logging"
	"github.com/spf13/cobra"

	"github.com/ruvumera/choir-panel/config"
	"github.com/ruvumera/choir-panel/database"
	"github.com/ruvumera/choir-panel/database/model"
	"github.com/ruvumera/choir-panel/logger"
	"github.com/ruvumera/choir-panel/web"
	"github.com/ruvumera/choir-panel/web/global"
	"github.com/ruvumera/choir-panel/web/service"
)

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Notice:
		logger.InitLogger(logging.NOTICE)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}

	err := database.InitDB(config.GetDBPath())
	if err != nil {
		log.Fatal(err)
	}

	server := web.NewServer()
	global.SetWebServer(server)
	err = server.Start()
	if err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			err := server.Stop()
			if err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			global.SetWebServer(server)
			err = server.Start()
			if err != nil {
				log.Println(err)
				return
			}
		default:
			_ = server.Stop()
			return
		}
	}
}

func resetSetting() {
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		fmt.Println(err)
		return
	}

	settingService := service.SettingService{}
	err = settingService.ResetSettings()
	if err != nil {
		fmt.Println("reset setting failed:", err)
	} else {
		fmt.Println("reset setting success")
	}
}

func showSetting() {
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		fmt.Println(err)
		return
	}

	settingService := service.SettingService{}
	port, err := settingService.GetPort()
	if err != nil {
		fmt.Println("get current port failed:", err)
	}
	basePath, err := settingService.GetBasePath()
	if err != nil {
		fmt.Println("get current base path failed:", err)
	}
	fmt.Println("current panel settings as follows:")
	fmt.Println("port:", port)
	fmt.Println("base path:", basePath)
	fmt.Println("admin email:", database.DefaultAdminEmail)
}

func resetAdminPassword(password string) {
	if password == "" {
		fmt.Println("password must not be empty")
		return
	}
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		fmt.Println(err)
		return
	}

	db := database.GetDB()
	admin := &model.User{}
	err = db.Model(model.User{}).Where("email = ?", database.DefaultAdminEmail).First(admin).Error
	if err != nil {
		fmt.Println("get admin account failed:", err)
		return
	}

	authService := service.AuthService{}
	if err := authService.ResetPassword(admin.Id, password); err != nil {
		fmt.Println("reset admin password failed:", err)
	} else {
		fmt.Println("reset admin password success")
	}
}

func main() {
	var rootCmd = &cobra.Command{
		Use: "choir-panel",
	}

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var settingCmd = &cobra.Command{
		Use:   "setting",
		Short: "Set settings",
	}

	var resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Reset all settings",
		Run: func(cmd *cobra.Command, args []string) {
			resetSetting()
		},
	}

	var showCmd = &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Run: func(cmd *cobra.Command, args []string) {
			showSetting()
		},
	}

	var adminCmd = &cobra.Command{
		Use:   "admin",
		Short: "Reset the seeded admin account password",
		Run: func(cmd *cobra.Command, args []string) {
			password, _ := cmd.Flags().GetString("password")
			resetAdminPassword(password)
		},
	}

	adminCmd.Flags().String("password", "", "new password for the seeded admin account")

	settingCmd.AddCommand(resetCmd, showCmd, adminCmd)

	rootCmd.AddCommand(runCmd, settingCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
