package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"verigate/pkg/config"
	"verigate/pkg/gateway"
	vstrings "verigate/pkg/strings"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// buildClient constructs a gateway client from the persistent flags. The
// resolution order below the flags (config file, environment, defaults) is
// handled by the client itself.
func buildClient() (*gateway.Client, error) {
	return gateway.New(gateway.WithConfig(config.Params{
		ClientID:     flagClientID,
		ClientSecret: flagClientSecret,
		BaseURL:      flagBaseURL,
		ConfigPath:   flagConfigPath,
	}))
}

// runCall executes one gateway call with a progress spinner and prints the
// result. It is the shared body of every endpoint subcommand.
func runCall(message string, call func(ctx context.Context, client *gateway.Client) (*gateway.APIResponse, error)) error {
	client, err := buildClient()
	if err != nil {
		return err
	}
	defer client.Close()

	var s *spinner.Spinner
	if !flagQuiet {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Suffix = " " + message
		s.Start()
	}

	resp, err := call(context.Background(), client)

	if s != nil {
		s.Stop()
	}
	if err != nil {
		return err
	}
	return printResponse(resp)
}

// printResponse renders a successful gateway response in the selected output
// format.
func printResponse(resp *gateway.APIResponse) error {
	if flagOutput == "json" {
		out, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("%s %s\n", text.FgGreen.Sprint("✓"), resp.Message)

	if len(resp.Data) == 0 {
		return nil
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(resp.Data, &obj); err == nil {
		renderObjectTable(obj)
		return nil
	}

	var arr []interface{}
	if err := json.Unmarshal(resp.Data, &arr); err == nil {
		renderArrayTable(arr)
		return nil
	}

	fmt.Println(string(resp.Data))
	return nil
}

// createTable creates a new table with standard styling.
func createTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	return t
}

// renderObjectTable formats object data as key-value pairs.
func renderObjectTable(data map[string]interface{}) {
	t := createTable()
	t.AppendHeader([]interface{}{
		text.FgHiCyan.Sprint("FIELD"),
		text.FgHiCyan.Sprint("VALUE"),
	})

	for key, value := range data {
		t.AppendRow([]interface{}{key, vstrings.TruncateCell(fmt.Sprintf("%v", value), vstrings.DefaultCellMaxLen)})
	}

	t.Render()
}

// renderArrayTable formats an array of objects as one table, using the keys
// of the first element as columns. Non-object arrays fall back to a plain
// numbered list.
func renderArrayTable(items []interface{}) {
	if len(items) == 0 {
		fmt.Println(text.FgYellow.Sprint("No items found"))
		return
	}

	first, ok := items[0].(map[string]interface{})
	if !ok {
		for i, item := range items {
			fmt.Printf("  %d. %v\n", i+1, item)
		}
		return
	}

	columns := make([]string, 0, len(first))
	for key := range first {
		columns = append(columns, key)
	}

	t := createTable()
	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = text.FgHiCyan.Sprint(col)
	}
	t.AppendHeader(header)

	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		row := make([]interface{}, len(columns))
		for i, col := range columns {
			row[i] = vstrings.TruncateCell(fmt.Sprintf("%v", obj[col]), vstrings.DefaultCellMaxLen)
		}
		t.AppendRow(row)
	}

	t.Render()
	fmt.Printf("\n%s %d\n", text.FgHiBlue.Sprint("Total:"), len(items))
}
