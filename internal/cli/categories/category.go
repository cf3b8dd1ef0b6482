package categories

import (
	"strings"

	"github.com/DEVBOX10/Ididit/internal/cli"
	"github.com/DEVBOX10/Ididit/internal/models"
)

type CategoryCmd struct {
	Add    CategoryAddCmd    `cmd:"" help:"Add a category."`
	Rename CategoryRenameCmd `cmd:"" help:"Rename a category."`
	Delete CategoryDeleteCmd `cmd:"" help:"Delete a category with everything in it."`
	List   CategoryListCmd   `cmd:"" help:"Show the category tree." default:"1"`
}

type CategoryAddCmd struct {
	Name   string `arg:"" help:"Category name."`
	Parent int64  `help:"Parent category ID (defaults to the root category)."`
}

func (c *CategoryAddCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	category, err := tr.AddCategory(c.Parent, c.Name)
	if err != nil {
		return err
	}
	ctx.Printf("Added category %d: %s\n", category.ID, category.Name)
	return nil
}

type CategoryRenameCmd struct {
	ID   int64  `arg:"" help:"Category ID."`
	Name string `arg:"" help:"New name."`
}

func (c *CategoryRenameCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if err := tr.RenameCategory(c.ID, c.Name); err != nil {
		return err
	}
	ctx.Printf("Renamed category %d\n", c.ID)
	return nil
}

type CategoryDeleteCmd struct {
	ID int64 `arg:"" help:"Category ID."`
}

func (c *CategoryDeleteCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if err := tr.DeleteCategory(c.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted category %d\n", c.ID)
	return nil
}

type CategoryListCmd struct{}

func (c *CategoryListCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	for _, root := range tr.Data().Categories {
		printTree(ctx, root, 0)
	}
	return nil
}

func printTree(ctx *cli.Context, category *models.Category, depth int) {
	ctx.Printf("%s[%d] %s (%d goals)\n", strings.Repeat("  ", depth), category.ID, category.Name, len(category.Goals))
	for _, child := range category.Categories {
		printTree(ctx, child, depth+1)
	}
}
