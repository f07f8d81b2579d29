package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/wallmasters/storefront/internal/cart"
	"github.com/wallmasters/storefront/internal/checkout"
	"github.com/wallmasters/storefront/internal/storefront"
)

var errUsage = errors.New("invalid arguments")

func usageErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{errUsage}, args...)...)
}

func (s *shopper) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "products":
		return s.products(ctx, args)
	case "add":
		return s.add(ctx, args)
	case "inc", "dec", "remove":
		return s.changeLine(command, args)
	case "cart":
		s.printCart()
		return nil
	case "register":
		return s.register(ctx, args)
	case "login":
		return s.login(ctx, args)
	case "logout":
		return s.logout(ctx)
	case "addresses":
		return s.addresses(ctx, args)
	case "checkout":
		return s.checkout(ctx, args)
	case "orders":
		return s.orders(ctx)
	default:
		return usageErr("unknown command %q", command)
	}
}

func (s *shopper) table() *tabwriter.Writer {
	return tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
}

func (s *shopper) products(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	category := fs.String("category", "", "")
	search := fs.String("search", "", "")
	if err := fs.Parse(args); err != nil {
		return usageErr("%v", err)
	}
	list, page, err := s.api.ListProducts(ctx, storefront.ProductQuery{Category: *category, Search: *search, PageSize: 50})
	if err != nil {
		return err
	}
	w := s.table()
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tSIZES")
	for _, p := range list {
		sizes := make([]string, 0, len(p.Variants))
		for _, v := range p.Variants {
			if v.IsActive {
				sizes = append(sizes, fmt.Sprintf("%s=%s", v.Size, v.Price))
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, strings.Join(sizes, " "))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if page != nil && page.TotalPage > 1 {
		fmt.Fprintf(s.out, "page %d of %d\n", page.Page, page.TotalPage)
	}
	return nil
}

func lineArgs(args []string) (string, string, error) {
	if len(args) != 2 {
		return "", "", usageErr("expected <product_id> <size>")
	}
	return strings.TrimSpace(args[0]), strings.TrimSpace(args[1]), nil
}

func (s *shopper) add(ctx context.Context, args []string) error {
	productID, size, err := lineArgs(args)
	if err != nil {
		return err
	}
	product, err := s.api.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	variant, ok := product.FindVariant(size)
	if !ok {
		return fmt.Errorf("%w: size %s is not available", storefront.ErrNotFound, size)
	}
	if err := s.cart.AddItem(
		cart.Product{ID: product.ID.String(), Name: product.Name, Image: product.Image()},
		cart.Variant{Key: variant.Size, Price: variant.Price},
	); err != nil {
		return err
	}
	s.printCart()
	return nil
}

func (s *shopper) changeLine(command string, args []string) error {
	productID, size, err := lineArgs(args)
	if err != nil {
		return err
	}
	switch command {
	case "inc":
		s.cart.IncrementQuantity(productID, size)
	case "dec":
		s.cart.DecrementQuantity(productID, size)
	default:
		s.cart.RemoveItem(productID, size)
	}
	s.printCart()
	return nil
}

func (s *shopper) printCart() {
	items := s.cart.Items()
	owner := "guest"
	if id := s.cart.Identity(); id != "" {
		owner = "user " + id
	}
	if len(items) == 0 {
		fmt.Fprintf(s.out, "cart (%s) is empty\n", owner)
		return
	}
	totals := s.flow.Totals()
	w := s.table()
	fmt.Fprintf(w, "cart (%s), %d item(s)\n", owner, s.cart.Count())
	fmt.Fprintln(w, "PRODUCT\tNAME\tSIZE\tQTY\tPRICE\tSUBTOTAL")
	for _, it := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n", it.ProductID, it.DisplayName, it.VariantKey, it.Quantity, it.UnitPrice, it.Subtotal())
	}
	fmt.Fprintf(w, "\t\t\t\tsubtotal\t%s %s\n", totals.Subtotal, totals.Currency)
	shipping := totals.Shipping.String()
	if totals.FreeShipping() {
		shipping = "free"
	}
	fmt.Fprintf(w, "\t\t\t\tshipping\t%s\n", shipping)
	fmt.Fprintf(w, "\t\t\t\ttotal\t%s %s\n", totals.Total, totals.Currency)
	_ = w.Flush()
}

func (s *shopper) register(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return usageErr("expected <name> <email> <password>")
	}
	result, err := s.api.Register(ctx, args[0], args[1], args[2])
	if err != nil {
		return err
	}
	return s.signIn(ctx, result)
}

func (s *shopper) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageErr("expected <email> <password>")
	}
	result, err := s.api.Login(ctx, args[0], args[1], true)
	if err != nil {
		return err
	}
	return s.signIn(ctx, result)
}

// signIn 保存令牌；身份变化会触发购物车迁移
func (s *shopper) signIn(ctx context.Context, result *storefront.AuthResult) error {
	if err := s.session.SignIn(ctx, result.Token); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "signed in as %s\n", result.User.Email)
	s.printCart()
	return nil
}

func (s *shopper) logout(ctx context.Context) error {
	if err := s.session.SignOut(ctx); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "signed out")
	return nil
}

func (s *shopper) currentUser() (string, error) {
	userID, ok := s.session.Current()
	if !ok {
		return "", checkout.ErrSignInRequired
	}
	return userID, nil
}

func (s *shopper) addresses(ctx context.Context, args []string) error {
	userID, err := s.currentUser()
	if err != nil {
		return err
	}
	if len(args) > 0 {
		if len(args) != 2 {
			return usageErr("expected addresses default|delete <id>")
		}
		switch args[0] {
		case "default":
			if _, err := s.api.SetDefaultAddress(ctx, userID, args[1]); err != nil {
				return err
			}
		case "delete":
			if err := s.api.DeleteAddress(ctx, userID, args[1]); err != nil {
				return err
			}
		default:
			return usageErr("unknown addresses action %q", args[0])
		}
	}

	list, err := s.api.ListAddresses(ctx, userID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(s.out, "no saved addresses")
		return nil
	}
	w := s.table()
	fmt.Fprintln(w, "ID\tDEFAULT\tNAME\tADDRESS\tMOBILE")
	for _, a := range list {
		mark := ""
		if a.IsDefault {
			mark = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s %s, %s %s\t%s\n", a.ID, mark, a.Name, a.HouseNo, a.Street, a.City, a.PostalCode, a.MobileNo)
	}
	return w.Flush()
}

func (s *shopper) checkout(ctx context.Context, args []string) error {
	form, err := s.flow.PrefillAddress(ctx)
	if err != nil {
		// 地址簿不可用时仍允许手填
		fmt.Fprintln(s.out, checkout.UserMessage(s.locale, err))
	}

	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&form.Name, "name", form.Name, "")
	fs.StringVar(&form.Email, "email", form.Email, "")
	fs.StringVar(&form.MobileNo, "mobile", form.MobileNo, "")
	fs.StringVar(&form.HouseNo, "house", form.HouseNo, "")
	fs.StringVar(&form.Street, "street", form.Street, "")
	fs.StringVar(&form.City, "city", form.City, "")
	fs.StringVar(&form.PostalCode, "postal", form.PostalCode, "")
	fs.BoolVar(&form.SaveToBook, "save", false, "")
	if err := fs.Parse(args); err != nil {
		return usageErr("%v", err)
	}

	result, err := s.flow.SubmitOrder(ctx, form)
	if err != nil {
		return err
	}
	t := result.Snapshot.Totals
	fmt.Fprintf(s.out, "order %s placed: %s %s, cash on delivery to %s, %s\n",
		result.OrderID, t.Total, t.Currency, result.Snapshot.Address.Street, result.Snapshot.Address.City)
	return nil
}

func (s *shopper) orders(ctx context.Context) error {
	if _, err := s.currentUser(); err != nil {
		return err
	}
	list, _, err := s.api.ListOrders(ctx, 1, 20)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(s.out, "no orders yet")
		return nil
	}
	w := s.table()
	fmt.Fprintln(w, "ORDER\tDATE\tSTATUS\tITEMS\tTOTAL")
	for _, o := range list {
		count := 0
		for _, p := range o.Products {
			count += p.Quantity
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s %s\n", o.OrderID, o.CreatedAt.Format("2006-01-02"), o.OrderStatus, count, o.TotalPrice, o.Currency)
	}
	return w.Flush()
}
