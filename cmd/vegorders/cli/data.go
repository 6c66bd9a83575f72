package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mos234/vegetable-orders/internal/orders"
	"github.com/mos234/vegetable-orders/internal/suppliers"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func newSuppliersCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{Use: "suppliers", Short: "Manage suppliers"}

	var search string
	var asJSON bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List suppliers, optionally filtered by name or phone",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()
			found, err := c.Suppliers.Search(cmd.Context(), search)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), found)
			}
			renderSuppliers(cmd.OutOrStdout(), found)
			return nil
		},
	}
	list.Flags().StringVarP(&search, "query", "q", "", "case-insensitive name or phone filter")
	list.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	var in suppliers.Input
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a supplier",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()
			created, err := c.Suppliers.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created supplier %s (%s)\n", created.Name, created.ID)
			return nil
		},
	}
	add.Flags().StringVar(&in.Name, "name", "", "supplier name")
	add.Flags().StringVar(&in.Phone, "phone", "", "supplier phone")
	add.Flags().StringVar(&in.Notes, "notes", "", "free-text notes")

	remove := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a supplier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()
			removed, err := c.Suppliers.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !removed {
				return suppliers.ErrNotFound
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted supplier %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, add, remove)
	return cmd
}

func renderSuppliers(w io.Writer, list []suppliers.Supplier) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tPHONE\tNOTES")
	for _, sup := range list {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", sup.ID, sup.Name, sup.Phone, sup.Notes)
	}
	_ = tw.Flush()
}

func newOrdersCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{Use: "orders", Short: "Inspect orders"}

	var status, supplierID, search string
	var asJSON bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List orders, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			st := orders.Status(status)
			if status != "" && !st.Valid() {
				return fmt.Errorf("unknown status %q", status)
			}
			c, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()
			found, err := c.Orders.Query(cmd.Context(), orders.Filter{Status: st, SupplierID: supplierID, Search: search})
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), found)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "NUMBER\tSUPPLIER\tORDER DATE\tDELIVERY\tTOTAL\tSTATUS")
			for _, o := range found {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					o.OrderNumber, o.SupplierName, o.OrderDate.Display(), o.DeliveryDate.Display(),
					c.Labels.Money(o.Total), c.Labels.Localizer.T(o.Status.Label()))
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVar(&status, "status", "", "draft, sent, delivered or cancelled")
	list.Flags().StringVar(&supplierID, "supplier", "", "supplier id")
	list.Flags().StringVarP(&search, "query", "q", "", "order number or supplier name filter")
	list.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Count orders by status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()
			st, err := c.Orders.Stats(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), st)
		},
	}

	message := &cobra.Command{
		Use:   "message <id>",
		Short: "Print the supplier message and chat links for an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()
			o, ok, err := c.Orders.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return orders.ErrNotFound
			}
			links := c.Messages.ForOrder(o)
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, links.Text)
			_, _ = fmt.Fprintln(out)
			_, _ = fmt.Fprintln(out, "WhatsApp:", links.WhatsApp)
			_, _ = fmt.Fprintln(out, "SMS:", links.SMS)
			return nil
		},
	}

	cmd.AddCommand(list, stats, message)
	return cmd
}
