package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"linal/internal/command"
	"linal/internal/config"
	"linal/internal/engine"
	"linal/internal/schema"
	"linal/internal/storage/fileadapter"
	"linal/internal/value"
)

func main() {
	fmt.Println("LINAL engine starting...")

	cfg := config.Default()
	if path := os.Getenv("LINAL_CONFIG"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			fmt.Println("config ERROR:", err)
			return
		}
		cfg = loaded
	}

	adapter, err := fileadapter.New(cfg.DataRoot)
	if err != nil {
		fmt.Println("storage ERROR:", err)
		return
	}

	eng := engine.New(cfg, adapter)
	eng.SetLogger(logrus.StandardLogger())

	if err := eng.Bootstrap(context.Background()); err != nil {
		fmt.Println("bootstrap ERROR:", err)
		return
	}

	if _, err := eng.Execute(&command.CreateDatabase{Name: cfg.DefaultDatabase}); err != nil {
		fmt.Println("CreateDatabase ERROR:", err)
		return
	}
	if _, err := eng.Execute(&command.UseDatabase{Name: cfg.DefaultDatabase}); err != nil {
		fmt.Println("UseDatabase ERROR:", err)
		return
	}
	fmt.Printf("Database %q ready.\n", cfg.DefaultDatabase)

	usersSchema := schema.Schema{Fields: []schema.Field{
		{Name: "id", Type: value.TypeInt()},
		{Name: "name", Type: value.TypeString()},
		{Name: "active", Type: value.TypeBool()},
	}}
	if _, err := eng.Execute(&command.CreateDataset{Name: "users", Schema: usersSchema}); err != nil {
		fmt.Println("CreateDataset ERROR:", err)
		return
	}
	fmt.Println("Dataset 'users' created.")

	rows := []command.InsertRow{
		{Dataset: "users", Values: []value.Value{value.Int(1), value.String("Alice"), value.Bool(true)}},
		{Dataset: "users", Values: []value.Value{value.Int(2), value.String("Bob"), value.Bool(false)}},
	}
	for _, row := range rows {
		if _, err := eng.Execute(&row); err != nil {
			fmt.Println("InsertRow ERROR:", err)
			return
		}
	}
	fmt.Println("Inserted 2 rows into 'users'.")

	if _, err := eng.Execute(&command.DefineTensor{Name: "embedding", Shape: []int{3}, Data: []float64{0.1, 0.2, 0.3}}); err != nil {
		fmt.Println("DefineTensor ERROR:", err)
		return
	}
	fmt.Println("Tensor 'embedding' defined.")

	out, err := eng.Execute(&command.ShowAll{Dataset: "users"})
	if err != nil {
		fmt.Println("ShowAll ERROR:", err)
		return
	}
	rs := out.Payload.(engine.ResultSet)
	fmt.Println("\nusers:")
	for _, col := range rs.Columns {
		fmt.Printf("%s\t", col)
	}
	fmt.Println()
	for _, r := range rs.Rows {
		for _, v := range r {
			fmt.Printf("%s\t", v)
		}
		fmt.Println()
	}
}
