// Command railbank is the interactive console: the reservation desk menus
// plus an ATM submenu over the account ledger.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/amitrawal/railbank/infra/initializer"
	credrepo "github.com/amitrawal/railbank/infra/repository/credential"
	"github.com/amitrawal/railbank/infra/repository/ledger"
	resrepo "github.com/amitrawal/railbank/infra/repository/reservation"
	"github.com/amitrawal/railbank/pkg/config"
	resdomain "github.com/amitrawal/railbank/pkg/domain/reservation"
	"github.com/amitrawal/railbank/pkg/money"
	acctsvc "github.com/amitrawal/railbank/pkg/service/account"
	authsvc "github.com/amitrawal/railbank/pkg/service/auth"
	ressvc "github.com/amitrawal/railbank/pkg/service/reservation"
	"github.com/amitrawal/railbank/pkg/trains"
	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	title  = color.New(color.FgCyan, color.Bold)
	prompt = color.New(color.FgYellow)
	okMsg  = color.New(color.FgGreen)
	errMsg = color.New(color.FgRed)
)

type console struct {
	in       *bufio.Reader
	auth     *authsvc.Service
	res      *ressvc.Service
	accts    *acctsvc.Service
	dir      *trains.Directory
	ledger   *ledger.Ledger
	snapshot string // ledger snapshot path, empty to skip persistence
	current  string // authenticated username, empty when logged out
}

func main() {
	cfg, err := config.Load(slog.Default())
	if err != nil {
		errMsg.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	logger := initializer.SetupLogger(&cfg.Log)

	creds := credrepo.New(cfg.Data.CredentialsFile, logger)
	if err := creds.Load(); err != nil {
		errMsg.Fprintln(os.Stderr, "failed to initialize data files:", err)
		os.Exit(1)
	}
	resStore, err := resrepo.New(cfg.Data.ReservationsFile, logger)
	if err != nil {
		errMsg.Fprintln(os.Stderr, "failed to initialize data files:", err)
		os.Exit(1)
	}
	accounts := ledger.New(logger)
	if cfg.Data.LedgerSnapshot != "" {
		if err := accounts.Load(cfg.Data.LedgerSnapshot); err != nil {
			errMsg.Fprintln(os.Stderr, "failed to load ledger snapshot:", err)
		}
	}

	dir := trains.NewDirectory()
	c := &console{
		in:       bufio.NewReader(os.Stdin),
		auth:     authsvc.New(creds, authsvc.ComparerFor(cfg.Auth.Strategy), nil, logger),
		res:      ressvc.New(resStore, resdomain.NewGenerator(), dir, logger),
		accts:    acctsvc.New(accounts, logger),
		dir:      dir,
		ledger:   accounts,
		snapshot: cfg.Data.LedgerSnapshot,
	}

	title.Println("=== Welcome to railbank ===")
	fmt.Println()
	for {
		if c.current == "" {
			c.loginMenu()
		} else {
			c.mainMenu()
		}
	}
}

func (c *console) loginMenu() {
	fmt.Println("1) Login")
	fmt.Println("2) Register (create new user)")
	fmt.Println("3) Exit")
	switch c.readLine("Choose: ") {
	case "1":
		c.login()
	case "2":
		c.register()
	case "3":
		c.exit()
	default:
		errMsg.Println("Invalid option")
		fmt.Println()
	}
}

func (c *console) mainMenu() {
	title.Println("--- Main Menu ---")
	fmt.Println("1) Make Reservation")
	fmt.Println("2) Cancel Reservation")
	fmt.Println("3) View My Reservations")
	fmt.Println("4) ATM")
	fmt.Println("5) Logout")
	fmt.Println("6) Exit")
	switch c.readLine("Choose: ") {
	case "1":
		c.makeReservation()
	case "2":
		c.cancelReservation()
	case "3":
		c.viewReservations()
	case "4":
		c.atmMenu()
	case "5":
		okMsg.Printf("Logging out %s...\n\n", c.current)
		c.current = ""
	case "6":
		c.exit()
	default:
		errMsg.Println("Invalid option")
		fmt.Println()
	}
}

func (c *console) login() {
	username := c.readLine("Username: ")
	secret := c.readSecret("Password: ")
	identity, err := c.auth.Authenticate(username, secret)
	if err != nil {
		errMsg.Println("Login failed. Check credentials.")
		fmt.Println()
		return
	}
	c.current = identity
	okMsg.Printf("Login successful. Welcome, %s!\n\n", identity)
}

func (c *console) register() {
	username := c.readLine("Choose a username: ")
	secret := c.readSecret("Choose a password: ")
	if err := c.auth.Register(username, secret); err != nil {
		errMsg.Println("Registration failed:", err)
		fmt.Println()
		return
	}
	okMsg.Println("Registration successful. You may login now.")
	fmt.Println()
}

func (c *console) makeReservation() {
	title.Println("--- Make Reservation ---")
	in := ressvc.BookInput{
		Passenger: c.readLine("Passenger name: "),
	}
	age, err := strconv.Atoi(c.readLine("Age: "))
	if err != nil {
		errMsg.Println("Invalid age. Using 0.")
	}
	in.Age = age
	in.Gender = c.readLine("Gender (M/F/O): ")

	fmt.Println("Available trains (TrainNo - TrainName):")
	for _, t := range c.dir.List() {
		fmt.Printf("%s - %s\n", t.No, t.Name)
	}
	in.TrainNo = c.readLine("Enter Train Number (e.g. 12301): ")
	if !c.dir.Known(in.TrainNo) {
		errMsg.Println("Train number not found in directory. Train name will be set to 'Unknown Train'.")
	}
	in.Class = c.readLine("Class (Sleeper/AC/FirstClass): ")
	in.Date = c.readLine("Date of journey (yyyy-MM-dd): ")
	in.From = c.readLine("From (place): ")
	in.To = c.readLine("To (destination): ")

	r, err := c.res.Book(c.current, in)
	if err != nil {
		errMsg.Println("Reservation failed:", err)
		fmt.Println()
		return
	}
	okMsg.Printf("Reservation successful! Your PNR is: %s\n\n", r.PNR)
}

func (c *console) cancelReservation() {
	title.Println("--- Cancel Reservation ---")
	pnr := c.readLine("Enter PNR to cancel: ")
	err := c.res.Cancel(pnr, c.current, func(r *resdomain.Reservation) bool {
		fmt.Println("Reservation details:")
		fmt.Println(describe(r))
		yn := strings.ToUpper(c.readLine("Confirm cancellation? (Y/N): "))
		return yn == "Y"
	})
	switch {
	case err == nil:
		okMsg.Printf("Cancellation confirmed. PNR %s canceled.\n\n", pnr)
	case errors.Is(err, ressvc.ErrCancellationAborted):
		fmt.Println("Cancellation aborted.")
		fmt.Println()
	default:
		errMsg.Println("Cancellation failed:", err)
		fmt.Println()
	}
}

func (c *console) viewReservations() {
	title.Println("--- My Reservations ---")
	records, err := c.res.ListByOwner(c.current)
	if err != nil {
		errMsg.Println("Failed to read reservations:", err)
		fmt.Println()
		return
	}
	if len(records) == 0 {
		fmt.Println("No reservations found for your account.")
		fmt.Println()
		return
	}
	for _, r := range records {
		fmt.Println(describe(r))
	}
	fmt.Println()
}

func (c *console) atmMenu() {
	for {
		title.Println("--- ATM ---")
		fmt.Println("1) Open Account")
		fmt.Println("2) Balance")
		fmt.Println("3) Withdraw")
		fmt.Println("4) Deposit")
		fmt.Println("5) Transfer")
		fmt.Println("6) History")
		fmt.Println("7) Back")
		switch c.readLine("Choose: ") {
		case "1":
			c.openAccount()
		case "2":
			c.balance()
		case "3":
			c.withdraw()
		case "4":
			c.deposit()
		case "5":
			c.transfer()
		case "6":
			c.history()
		case "7":
			fmt.Println()
			return
		default:
			errMsg.Println("Invalid option")
			fmt.Println()
		}
	}
}

func (c *console) openAccount() {
	id := c.readLine("Account id: ")
	pin := c.readSecret("PIN: ")
	balance, err := money.Parse(c.readLine("Opening balance: "))
	if err != nil {
		errMsg.Println("Invalid amount:", err)
		return
	}
	a, err := c.accts.Open(id, pin, balance)
	if err != nil {
		errMsg.Println("Failed to open account:", err)
		return
	}
	okMsg.Printf("Account %s opened. Balance: %s\n", a.ID, money.Format(a.Balance))
}

// atmLogin asks for an account id and PIN and returns the id when they match.
func (c *console) atmLogin() (string, bool) {
	id := c.readLine("Account id: ")
	pin := c.readSecret("PIN: ")
	if err := c.accts.VerifyPIN(id, pin); err != nil {
		errMsg.Println("Access denied:", err)
		return "", false
	}
	return id, true
}

func (c *console) balance() {
	id, ok := c.atmLogin()
	if !ok {
		return
	}
	a, err := c.accts.Get(id)
	if err != nil {
		errMsg.Println("Failed to fetch balance:", err)
		return
	}
	okMsg.Printf("Account %s balance: %s\n", a.ID, money.Format(a.Balance))
}

func (c *console) withdraw() {
	id, ok := c.atmLogin()
	if !ok {
		return
	}
	amount, err := money.Parse(c.readLine("Amount: "))
	if err != nil {
		errMsg.Println("Invalid amount:", err)
		return
	}
	bal, err := c.accts.Withdraw(id, amount)
	if err != nil {
		errMsg.Println("Withdrawal failed:", err)
		return
	}
	okMsg.Printf("Withdrew %s. New balance: %s\n", money.Format(amount), money.Format(bal))
}

func (c *console) deposit() {
	id, ok := c.atmLogin()
	if !ok {
		return
	}
	amount, err := money.Parse(c.readLine("Amount: "))
	if err != nil {
		errMsg.Println("Invalid amount:", err)
		return
	}
	bal, err := c.accts.Deposit(id, amount)
	if err != nil {
		errMsg.Println("Deposit failed:", err)
		return
	}
	okMsg.Printf("Deposited %s. New balance: %s\n", money.Format(amount), money.Format(bal))
}

func (c *console) transfer() {
	id, ok := c.atmLogin()
	if !ok {
		return
	}
	to := c.readLine("Transfer to account: ")
	amount, err := money.Parse(c.readLine("Amount: "))
	if err != nil {
		errMsg.Println("Invalid amount:", err)
		return
	}
	if err := c.accts.Transfer(id, to, amount); err != nil {
		errMsg.Println("Transfer failed:", err)
		return
	}
	okMsg.Printf("Transferred %s from %s to %s.\n", money.Format(amount), id, to)
}

func (c *console) history() {
	id, ok := c.atmLogin()
	if !ok {
		return
	}
	log, err := c.accts.History(id)
	if err != nil {
		errMsg.Println("Failed to read history:", err)
		return
	}
	if len(log) == 0 {
		fmt.Println("No transactions yet.")
		return
	}
	for _, tx := range log {
		line := fmt.Sprintf("%s  %-12s  %10s  balance %10s",
			tx.CreatedAt.Format("2006-01-02 15:04:05"),
			tx.Kind,
			money.Format(tx.Amount),
			money.Format(tx.Balance),
		)
		if tx.Counterpart != "" {
			line += "  with " + tx.Counterpart
		}
		fmt.Println(line)
	}
}

func (c *console) exit() {
	if c.snapshot != "" {
		if err := c.ledger.Save(c.snapshot); err != nil {
			errMsg.Fprintln(os.Stderr, "failed to save ledger snapshot:", err)
		}
	}
	fmt.Println("Goodbye!")
	os.Exit(0)
}

func (c *console) readLine(label string) string {
	prompt.Print(label)
	line, _ := c.in.ReadString('\n')
	return strings.TrimSpace(line)
}

// readSecret reads without echo when stdin is a terminal, falling back to a
// plain line read when it is not (pipes, tests).
func (c *console) readSecret(label string) string {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return c.readLine(label)
	}
	prompt.Print(label)
	b, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func describe(r *resdomain.Reservation) string {
	return fmt.Sprintf("PNR: %s | Passenger: %s (Age: %d, %s) | Train: %s - %s | Class: %s | Date: %s | From: %s -> To: %s",
		r.PNR, r.Passenger, r.Age, r.Gender,
		r.TrainNo, r.TrainName, r.Class,
		r.Date.Format(resdomain.DateLayout), r.From, r.To)
}
