package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"labstock/config"
	"labstock/database"
	"labstock/database/model"
	"labstock/logger"
	"labstock/util/common"
	"labstock/util/validation"
	"labstock/web"
	"labstock/web/service"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
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
	err = server.Start()
	if err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			err := server.Stop()
			if err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			err = server.Start()
			if err != nil {
				log.Println(err)
				return
			}
		default:
			err := server.Stop()
			if err != nil {
				logger.Warning("stop server err:", err)
			}
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
	accountService := service.AccountService{}
	account, err := accountService.GetFirstAccount()
	if err != nil {
		fmt.Println("get current account failed:", err)
		return
	}
	fmt.Println("current panel settings as follows:")
	fmt.Println("username:", account.Username)
	fmt.Println("email:", account.Email)
	fmt.Println("port:", port)
}

func updateSetting(port int) {
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		fmt.Println(err)
		return
	}

	settingService := service.SettingService{}

	if port > 0 {
		err := settingService.SetPort(port)
		if err != nil {
			fmt.Println("set port failed:", err)
		} else {
			fmt.Printf("set port %v success\n", port)
		}
	}
}

func createAccount(firstName string, lastName string, designation string, laboratory string, username string, email string, password string) {
	err := common.Combine(
		validation.ValidateUsername(username),
		validation.ValidateEmail(email),
		validation.ValidatePassword(password),
	)
	if err != nil {
		fmt.Println("create account failed:", err)
		return
	}
	if !model.ValidDesignation(designation) || !model.ValidLaboratory(laboratory) {
		fmt.Println("create account failed: unknown designation or laboratory")
		return
	}

	err = database.InitDB(config.GetDBPath())
	if err != nil {
		fmt.Println(err)
		return
	}

	accountService := service.AccountService{}
	account, err := accountService.CreateAccount(service.ProfileFields{
		FirstName:   firstName,
		LastName:    lastName,
		Designation: designation,
		Laboratory:  laboratory,
		Username:    username,
		Email:       email,
	}, password)
	if err != nil {
		if database.IsDuplicate(err) {
			fmt.Println("create account failed: username or email already in use")
		} else {
			fmt.Println("create account failed:", err)
		}
		return
	}
	fmt.Printf("created account %v (id %v)\n", account.Username, account.Id)
}

func main() {
	_ = godotenv.Load()
	if err := config.LoadFile(); err != nil {
		log.Fatal("load config file:", err)
	}

	var rootCmd = &cobra.Command{
		Use: "labstock",
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

	var updateCmd = &cobra.Command{
		Use:   "update",
		Short: "Update settings",
		Run: func(cmd *cobra.Command, args []string) {
			port, _ := cmd.Flags().GetInt("port")
			updateSetting(port)
		},
	}

	updateCmd.Flags().Int("port", 0, "set panel port")

	var accountCmd = &cobra.Command{
		Use:   "account",
		Short: "Manage staff accounts",
	}

	var accountCreateCmd = &cobra.Command{
		Use:   "create",
		Short: "Create a staff account",
		Run: func(cmd *cobra.Command, args []string) {
			firstName, _ := cmd.Flags().GetString("first-name")
			lastName, _ := cmd.Flags().GetString("last-name")
			designation, _ := cmd.Flags().GetString("designation")
			laboratory, _ := cmd.Flags().GetString("laboratory")
			username, _ := cmd.Flags().GetString("username")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			createAccount(firstName, lastName, designation, laboratory, username, email, password)
		},
	}

	accountCreateCmd.Flags().String("first-name", "", "first name")
	accountCreateCmd.Flags().String("last-name", "", "last name")
	accountCreateCmd.Flags().String("designation", "", "designation")
	accountCreateCmd.Flags().String("laboratory", "", "laboratory")
	accountCreateCmd.Flags().String("username", "", "login username")
	accountCreateCmd.Flags().String("email", "", "email address")
	accountCreateCmd.Flags().String("password", "", "login password")

	settingCmd.AddCommand(resetCmd, showCmd, updateCmd)
	accountCmd.AddCommand(accountCreateCmd)

	rootCmd.AddCommand(runCmd, settingCmd, accountCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
