package main

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"
)

type repr struct {
	Name string
	Type string
	Bits int
	Max  string
}

func main() {
	// Open the input file and read its contents
	data, err := readCsvFile(filepath.Join("scripts", "repr", "repr_data.csv"))
	if err != nil {
		panic(fmt.Errorf("error reading CSV file: %v", err))
	}

	// Convert the CSV records to a list of representations
	reprs, err := convertDataToReprs(data)
	if err != nil {
		panic(fmt.Errorf("error converting CSV records: %v", err))
	}

	// Generate Go code from the representations using a template
	code, err := generateGoCode(filepath.Join("scripts", "repr", "repr_data.tmpl"), reprs)
	if err != nil {
		panic(fmt.Errorf("error generating Go code: %v", err))
	}

	// Write the generated Go code to a file
	err = writeToFile("repr_data.go", code)
	if err != nil {
		panic(fmt.Errorf("error writing to file: %v", err))
	}
}

func readCsvFile(filename string) ([][]string, error) {
	// Open the CSV file
	in, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() { _ = in.Close() }()

	// Read the CSV records
	reader := csv.NewReader(in)
	_, err = reader.Read() // header
	if err != nil {
		return nil, err
	}
	recs, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	return recs, nil
}

func convertDataToReprs(data [][]string) ([]repr, error) {
	reprs := []repr{}
	for _, rec := range data {
		bits, err := strconv.Atoi(rec[2])
		if err != nil {
			return nil, fmt.Errorf("representation %v: %w", rec[0], err)
		}
		// The largest value must be 2^(bits-1) - 1
		max, err := strconv.ParseUint(rec[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("representation %v: %w", rec[0], err)
		}
		if max != uint64(1)<<(bits-1)-1 {
			return nil, fmt.Errorf("representation %v: largest value %v does not match %v bits", rec[0], max, bits)
		}
		r := repr{
			Name: rec[0],
			Type: rec[1],
			Bits: bits,
			Max:  rec[3],
		}
		reprs = append(reprs, r)
	}

	// Sort the representations by width
	sort.SliceStable(reprs, func(i, j int) bool {
		return reprs[i].Bits < reprs[j].Bits
	})
	return reprs, nil
}

func generateGoCode(filename string, reprs []repr) ([]byte, error) {
	// Create a new template object from the template file
	fmap := template.FuncMap{
		"article": article,
	}
	tmpl, err := template.New(filepath.Base(filename)).Funcs(fmap).ParseFiles(filename)
	if err != nil {
		return nil, err
	}

	// Execute the template
	var output bytes.Buffer
	err = tmpl.Execute(&output, reprs)
	if err != nil {
		return nil, err
	}

	// Format the output as Go code
	formatted, err := format.Source(output.Bytes())
	if err != nil {
		return nil, err
	}
	return formatted, nil
}

func article(word string) string {
	if strings.ContainsAny(word[:1], "aeiouAEIOU") {
		return "an"
	}
	return "a"
}

func writeToFile(filename string, content []byte) error {
	// Write the content to a file
	out, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()
	writer := bufio.NewWriter(out)
	_, err = writer.Write(content)
	if err != nil {
		return err
	}
	err = writer.Flush()
	if err != nil {
		return err
	}
	return nil
}
