package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/simplete/storefront/internal/api"
	"github.com/simplete/storefront/internal/authz"
	"github.com/simplete/storefront/internal/cart"
	"github.com/simplete/storefront/internal/checkout"
	"github.com/simplete/storefront/internal/domain"
	"github.com/simplete/storefront/internal/fetch"
	"github.com/simplete/storefront/internal/localstore"
	"github.com/simplete/storefront/internal/session"
	"github.com/simplete/storefront/internal/view"
)

type Config struct {
	APIBaseURL     string
	StatePath      string
	RequestTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		APIBaseURL:     getEnv("STOREFRONT_API_URL", "http://localhost:5205/api/v1"),
		StatePath:      getEnv("STOREFRONT_STATE_PATH", "storefront.db"),
		RequestTimeout: 30 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// app holds the process-wide stores, constructed once at startup.
type app struct {
	cfg      *Config
	route    string
	log      *zap.Logger
	client   *api.Client
	session  *session.Store
	cart     *cart.Store
	flow     *checkout.Flow
	policy   authz.Policy
	flash    *view.Flash
	products *fetch.Fetcher[[]domain.Product]
}

func main() {
	cfg := loadConfig()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	base, err := url.Parse(cfg.APIBaseURL)
	if err != nil {
		logger.Fatal("invalid API base URL", zap.String("url", cfg.APIBaseURL), zap.Error(err))
	}

	state, err := localstore.Open(cfg.StatePath)
	if err != nil {
		logger.Fatal("failed to open local state", zap.Error(err))
	}
	defer state.Close()

	bearer := &api.Bearer{}
	client := api.NewClient(*base, api.NewHTTPClient(cfg.RequestTimeout), bearer, logger)
	sess := session.New(client, state, bearer, logger)

	if err := sess.Restore(context.Background()); err != nil && !errors.Is(err, session.ErrNoSession) {
		logger.Warn("could not restore session", zap.Error(err))
	}

	cartStore := cart.New()
	flow := checkout.NewFlow(client, cartStore, sess, logger)
	defer flow.Close()

	a := &app{
		cfg:      cfg,
		route:    "/",
		log:      logger,
		client:   client,
		session:  sess,
		cart:     cartStore,
		flow:     flow,
		policy:   authz.NewPolicy(),
		flash:    view.NewFlash(nil),
		products: fetch.New[[]domain.Product](nil),
	}
	a.run()
}

func (a *app) run() {
	fmt.Println("Simpleté storefront. Type 'help' for commands.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		if view.ShowChrome(a.route) {
			a.printChrome()
		}
		if msg, ok := a.flash.Active(); ok {
			fmt.Println(msg)
		}
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" || args[0] == "quit" {
			return
		}
		a.route = routeFor(args[0])
		a.dispatch(args)
	}
}

// routeFor maps a command to the screen it lands on. The auth screens
// render without the header chrome.
func routeFor(cmd string) string {
	switch cmd {
	case "login":
		return "/login"
	case "register":
		return "/register"
	default:
		return "/"
	}
}

// printChrome draws the header line with the signed-in user and the
// cart badge.
func (a *app) printChrome() {
	who := "guest"
	if sess, ok := a.session.Current(); ok {
		who = sess.UserID
	}
	fmt.Printf("[Simpleté | %s | cart (%d)]\n", who, a.cart.Count())
}

func (a *app) dispatch(args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.RequestTimeout)
	defer cancel()

	var err error
	switch args[0] {
	case "help":
		printHelp()
	case "login":
		err = a.login(ctx, args[1:])
	case "register":
		err = a.register(ctx, args[1:])
	case "logout":
		a.session.Logout(ctx)
		fmt.Println("Logged out.")
	case "whoami":
		a.whoami()
	case "products":
		err = a.listProducts(ctx, args[1:])
	case "search":
		err = a.search(ctx, args[1:])
	case "qty":
		err = a.quantity(ctx, args[1:])
	case "add":
		err = a.addToCart(args[1:])
	case "cart":
		a.showCart()
	case "remove", "decrease":
		err = a.adjustCart(args)
	case "clear":
		a.cart.Clear()
		fmt.Println("Cart cleared.")
	case "checkout":
		err = a.checkout(ctx)
	case "admin":
		err = a.admin(ctx, args[1:])
	case "create-product":
		err = a.createProduct(ctx, strings.Join(args[1:], " "))
	case "discount":
		err = a.discount(ctx, args[1:])
	case "undiscount":
		err = a.undiscount(ctx, args[1:])
	case "status":
		err = a.orderStatus(ctx, args[1:])
	case "deluser":
		err = a.deleteUser(ctx, args[1:])
	case "report":
		err = a.report(ctx, args[1:])
	default:
		fmt.Printf("Unknown command %q. Type 'help'.\n", args[0])
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
	}
}

func printHelp() {
	fmt.Print(`Commands:
  login <email> <password>           register <first> <last> <email> <password>
  logout                             whoami
  products [discounted] [<from> <to>]
  search <query> [brand] [size]
  qty <product-id>                   add <product-id>
  cart                               remove|decrease <product-id>
  clear                              checkout
  admin <products|orders|users|reports>
  create-product <name;desc;price;qty;category;brand;size;gender;color>
  discount <product-id> <percent>    undiscount <product-id>
  status <order-id> <code 0-5>       deluser <user-id>
  report <daily|monthly|top>         exit
`)
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: usage: login <email> <password>", domain.ErrValidation)
	}
	if !view.ValidEmail(args[0]) {
		return fmt.Errorf("%w: %q is not a valid email", domain.ErrValidation, args[0])
	}
	sess, err := a.session.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("Welcome back. Roles: %s\n", strings.Join(sess.Roles, ", "))
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("%w: usage: register <first> <last> <email> <password>", domain.ErrValidation)
	}
	if !view.ValidEmail(args[2]) {
		return fmt.Errorf("%w: %q is not a valid email", domain.ErrValidation, args[2])
	}
	_, err := a.session.Register(ctx, domain.Registration{
		FirstName: view.Capitalize(args[0]),
		LastName:  view.Capitalize(args[1]),
		Email:     args[2],
		Password:  args[3],
	})
	if err != nil {
		return err
	}
	fmt.Println("Account created, you are now signed in.")
	return nil
}

func (a *app) whoami() {
	sess, ok := a.session.Current()
	if !ok {
		fmt.Println("Not signed in.")
		return
	}
	fmt.Printf("User %s, roles: %s\n", sess.UserID, strings.Join(sess.Roles, ", "))
}

func (a *app) listProducts(ctx context.Context, args []string) error {
	load := a.client.Products
	if len(args) > 0 && args[0] == "discounted" {
		load = a.client.DiscountedProducts
		args = args[1:]
	}
	narrow, err := parsePriceRange(args)
	if err != nil {
		return err
	}
	a.products.Fetch(ctx, load)
	return a.renderProducts(ctx, narrow)
}

// parsePriceRange turns optional "<from> <to>" arguments into a
// catalog filter, or nil when no bounds were given.
func parsePriceRange(args []string) (func([]domain.Product) []domain.Product, error) {
	switch len(args) {
	case 0:
		return nil, nil
	case 2:
		from, err := decimal.NewFromString(args[0])
		if err != nil {
			return nil, fmt.Errorf("%w: bad lower price bound: %v", domain.ErrValidation, err)
		}
		to, err := decimal.NewFromString(args[1])
		if err != nil {
			return nil, fmt.Errorf("%w: bad upper price bound: %v", domain.ErrValidation, err)
		}
		return func(products []domain.Product) []domain.Product {
			return view.FilterByPriceRange(products, from, to)
		}, nil
	default:
		return nil, fmt.Errorf("%w: usage: products [discounted] [<from> <to>]", domain.ErrValidation)
	}
}

func (a *app) search(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: usage: search <query> [brand] [size]", domain.ErrValidation)
	}
	var brand, size string
	if len(args) > 1 {
		brand = args[1]
	}
	if len(args) > 2 {
		size = args[2]
	}
	a.products.Fetch(ctx, func(ctx context.Context) ([]domain.Product, error) {
		return a.client.SearchProducts(ctx, args[0], brand, size)
	})
	return a.renderProducts(ctx, nil)
}

// renderProducts waits for the products fetcher to settle, narrows the
// result through the optional filter, then prints it. A result
// superseded by a newer query is never shown.
func (a *app) renderProducts(ctx context.Context, narrow func([]domain.Product) []domain.Product) error {
	for a.products.Result().Loading {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}
	res := a.products.Result()
	if res.Err != nil {
		return res.Err
	}
	listed := res.Data
	if narrow != nil {
		listed = narrow(listed)
	}
	if len(listed) == 0 {
		fmt.Println("No products found.")
		return nil
	}
	for _, p := range listed {
		line := fmt.Sprintf("%4d  %-24s %10s  [%s]", p.ID, p.Name, view.FormatPrice(p.Price), view.AssetForCategory(p.CategoryName))
		if p.IsDiscounted {
			line += fmt.Sprintf("  -%s%%", p.DiscountPercentage.StringFixed(0))
		}
		fmt.Println(line)
	}
	return nil
}

func (a *app) quantity(ctx context.Context, args []string) error {
	id, err := parseID(args, "qty <product-id>")
	if err != nil {
		return err
	}
	qty, err := a.client.ProductQuantity(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("%d in stock.\n", qty)
	return nil
}

func (a *app) addToCart(args []string) error {
	id, err := parseID(args, "add <product-id>")
	if err != nil {
		return err
	}
	res := a.products.Result()
	for _, p := range res.Data {
		if p.ID == id {
			a.cart.Add(p)
			a.flash.Show(fmt.Sprintf("Added %s to cart.", p.Name), view.DefaultFlashDisplay)
			return nil
		}
	}
	return fmt.Errorf("%w: product %d is not in the listed catalog; run 'products' first", domain.ErrValidation, id)
}

func (a *app) showCart() {
	items := a.cart.Items()
	if len(items) == 0 {
		fmt.Println("Your cart is empty.")
		return
	}
	for _, item := range items {
		fmt.Printf("%4d  %-24s x%-3d %10s\n", item.ProductID, item.Name, item.Quantity, view.FormatPrice(item.Subtotal()))
	}
	fmt.Printf("Total (%d items): %s\n", a.cart.Count(), view.FormatPrice(a.cart.Total()))
}

func (a *app) adjustCart(args []string) error {
	id, err := parseID(args[1:], args[0]+" <product-id>")
	if err != nil {
		return err
	}
	if args[0] == "remove" {
		a.cart.Remove(id)
	} else {
		a.cart.Decrease(id)
	}
	a.showCart()
	return nil
}

func (a *app) checkout(ctx context.Context) error {
	if err := a.flow.Submit(ctx); err != nil {
		a.flow.Acknowledge()
		return err
	}
	fmt.Println("Order placed successfully!")
	return nil
}

func (a *app) admin(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: usage: admin <products|orders|users|reports>", domain.ErrValidation)
	}
	section := authz.Section(args[0])
	v := view.ComposeAdmin(a.policy, a.session.Roles(), section)
	if !v.Allowed {
		fmt.Println(v.Placeholder)
		return nil
	}
	fmt.Println(v.Title)

	switch section {
	case authz.SectionProducts:
		return a.listProducts(ctx, nil)
	case authz.SectionOrders:
		orders, err := a.client.Orders(ctx)
		if err != nil {
			return err
		}
		for _, o := range orders {
			fmt.Printf("%6d  %-10s %10s\n", o.ID, o.Status, view.FormatPrice(o.TotalPrice))
		}
	case authz.SectionUsers:
		users, err := a.client.Users(ctx)
		if err != nil {
			return err
		}
		for _, u := range users {
			fmt.Printf("%s  %s (%s %s)\n", u.ID, u.UserName, u.FirstName, u.LastName)
		}
	case authz.SectionReports:
		fmt.Println("Use: report <daily|monthly|top>")
	default:
		return fmt.Errorf("%w: unknown section %q", domain.ErrValidation, args[0])
	}
	return nil
}

func (a *app) createProduct(ctx context.Context, input string) error {
	if !a.policy.Can(a.session.Roles(), authz.ActionCreateProduct) {
		fmt.Println(view.PermissionDeniedMessage)
		return nil
	}
	fields := strings.Split(input, ";")
	if len(fields) != 9 {
		return fmt.Errorf("%w: expected 9 ';'-separated fields", domain.ErrValidation)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(fields[2]))
	if err != nil {
		return fmt.Errorf("%w: bad price: %v", domain.ErrValidation, err)
	}
	qty, err := strconv.Atoi(strings.TrimSpace(fields[3]))
	if err != nil {
		return fmt.Errorf("%w: bad quantity: %v", domain.ErrValidation, err)
	}
	err = a.client.CreateProduct(ctx, domain.NewProduct{
		Name:         strings.TrimSpace(fields[0]),
		Description:  strings.TrimSpace(fields[1]),
		Price:        price,
		Quantity:     qty,
		CategoryName: strings.TrimSpace(fields[4]),
		BrandName:    strings.TrimSpace(fields[5]),
		SizeName:     strings.TrimSpace(fields[6]),
		GenderName:   strings.TrimSpace(fields[7]),
		ColorName:    strings.TrimSpace(fields[8]),
	})
	if err != nil {
		return err
	}
	fmt.Println("Product added successfully!")
	return nil
}

func (a *app) discount(ctx context.Context, args []string) error {
	if !a.policy.Can(a.session.Roles(), authz.ActionApplyDiscount) {
		fmt.Println(view.PermissionDeniedMessage)
		return nil
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: usage: discount <product-id> <percent>", domain.ErrValidation)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: bad product id: %v", domain.ErrValidation, err)
	}
	pct, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("%w: bad percentage: %v", domain.ErrValidation, err)
	}
	if err := a.client.ApplyDiscount(ctx, id, pct); err != nil {
		return err
	}
	fmt.Println("Discount applied successfully!")
	return nil
}

func (a *app) undiscount(ctx context.Context, args []string) error {
	if !a.policy.Can(a.session.Roles(), authz.ActionRemoveDiscount) {
		fmt.Println(view.PermissionDeniedMessage)
		return nil
	}
	id, err := parseID(args, "undiscount <product-id>")
	if err != nil {
		return err
	}
	if err := a.client.RemoveDiscount(ctx, id); err != nil {
		return err
	}
	fmt.Println("Discount removed successfully!")
	return nil
}

func (a *app) orderStatus(ctx context.Context, args []string) error {
	if !a.policy.Can(a.session.Roles(), authz.ActionChangeOrderStatus) {
		fmt.Println(view.PermissionDeniedMessage)
		return nil
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: usage: status <order-id> <code 0-5>", domain.ErrValidation)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: bad order id: %v", domain.ErrValidation, err)
	}
	code, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: bad status code: %v", domain.ErrValidation, err)
	}
	if err := a.client.UpdateOrderStatus(ctx, id, domain.OrderStatus(code)); err != nil {
		return err
	}
	fmt.Println("Order status updated successfully.")
	return nil
}

func (a *app) deleteUser(ctx context.Context, args []string) error {
	if !a.policy.Can(a.session.Roles(), authz.ActionDeleteUser) {
		fmt.Println(view.PermissionDeniedMessage)
		return nil
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: usage: deluser <user-id>", domain.ErrValidation)
	}
	if err := a.client.DeleteUser(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("User deleted successfully!")
	return nil
}

func (a *app) report(ctx context.Context, args []string) error {
	v := view.ComposeAdmin(a.policy, a.session.Roles(), authz.SectionReports)
	if !v.Allowed {
		fmt.Println(v.Placeholder)
		return nil
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: usage: report <daily|monthly|top>", domain.ErrValidation)
	}

	now := time.Now().UTC()
	switch args[0] {
	case "daily":
		rep, err := a.client.DailyReport(ctx, now)
		if err != nil {
			return err
		}
		printReport(view.FormatDate(now), rep)
	case "monthly":
		rep, err := a.client.MonthlyReport(ctx, int(now.Month()), now.Year())
		if err != nil {
			return err
		}
		printReport(now.Format("January 2006"), rep)
	case "top":
		reports, err := a.client.TopSelling(ctx, 5)
		if err != nil {
			return err
		}
		for i, rep := range reports {
			fmt.Printf("#%d %s: sold %d, revenue %s\n", i+1,
				rep.MostSellingProductName, rep.MostSellingProductQuantity,
				view.FormatPrice(rep.TotalEarnings))
		}
	default:
		return fmt.Errorf("%w: unknown report %q", domain.ErrValidation, args[0])
	}
	return nil
}

func printReport(period string, rep domain.SalesReport) {
	fmt.Printf("%s: earnings %s, best seller %s (%d sold)\n", period,
		view.FormatPrice(rep.TotalEarnings), rep.MostSellingProductName,
		rep.MostSellingProductQuantity)
}

func parseID(args []string, usage string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: usage: %s", domain.ErrValidation, usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad product id: %v", domain.ErrValidation, err)
	}
	return id, nil
}
