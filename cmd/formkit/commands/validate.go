package commands

import (
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	formkit "github.com/goliatone/go-formkit"
	"github.com/goliatone/go-formkit/pkg/dom"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/validation"
)

func validateCmd(a *app) *cobra.Command {
	var (
		input, output, formRef, serverErrors string
		values, files, hidden                 []string
		printValues                           bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Fill a form, submit it and report validation issues",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(input)
			if err != nil {
				return a.fail(err)
			}
			opts, err := a.initOptions("")
			if err != nil {
				return a.fail(err)
			}

			var result validation.Result
			opts = append(opts, formkit.WithValidatorOptions(validation.WithReporter(func(_ dom.Element, r validation.Result) {
				result = r
			})))
			h, err := formkit.Init(doc, opts...)
			if err != nil {
				return a.fail(err)
			}
			defer h.Close()

			form, err := selectForm(doc, formRef)
			if err != nil {
				return a.fail(err)
			}
			if err := fillValues(doc, form, values); err != nil {
				return a.fail(err)
			}
			if err := attachFiles(doc, form, files); err != nil {
				return a.fail(err)
			}
			if err := applyHidden(form, hidden); err != nil {
				return a.fail(err)
			}

			blocked := doc.Submit(form).DefaultPrevented()
			out := cmd.OutOrStdout()
			for _, issue := range result.Issues {
				fmt.Fprintf(out, "%s: %s\n", issue.Name, issue.Message)
			}

			if !blocked && serverErrors != "" {
				payload, err := readPayload(serverErrors)
				if err != nil {
					return a.fail(err)
				}
				mapping := render.ApplyErrorPayload(form, payload)
				blocked = len(mapping.Form) > 0 || len(mapping.Fields) > 0
				for _, message := range mapping.Form {
					fmt.Fprintf(out, "form: %s\n", message)
				}
				for _, control := range form.QueryAll(dom.HasAttr("name")) {
					for _, message := range mapping.Fields[control.Name()] {
						fmt.Fprintf(out, "%s: %s\n", control.Name(), message)
					}
					delete(mapping.Fields, control.Name())
				}
			}

			if output != "" {
				if err := writeDocument(cmd, doc, output); err != nil {
					return a.fail(err)
				}
			}
			if blocked {
				a.logs.Info.Printf("validate %s: blocked with %d issues", input, len(result.Issues))
				return ErrBlocked
			}
			if printValues {
				for _, value := range render.Submission(form) {
					fmt.Fprintf(out, "%s=%s\n", value.Name, value.Value)
				}
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "HTML document holding the form")
	cmd.Flags().StringVar(&output, "output", "", "write the annotated document to this file")
	cmd.Flags().StringVar(&formRef, "form", "", "form id or zero-based index among data-validate forms")
	cmd.Flags().StringArrayVar(&values, "set", nil, "field value as name=value (repeatable)")
	cmd.Flags().StringArrayVar(&files, "file", nil, "file selection as name=path (repeatable)")
	cmd.Flags().StringArrayVar(&hidden, "hidden", nil, "hidden field as name=value, e.g. a CSRF token (repeatable)")
	cmd.Flags().BoolVar(&printValues, "print-values", false, "print the submitted payload when the form is valid")
	cmd.Flags().StringVar(&serverErrors, "server-errors", "", "JSON error payload applied after a passing submit")
	return cmd
}

func selectForm(doc *dom.Document, ref string) (dom.Element, error) {
	forms := doc.QueryAll(validation.ValidatedForms)
	ref = strings.TrimSpace(ref)
	if ref == "" {
		ref = "0"
	}
	if index, err := strconv.Atoi(ref); err == nil {
		if index < 0 || index >= len(forms) {
			return dom.Element{}, fmt.Errorf("formkit: form index %d out of range (%d forms)", index, len(forms))
		}
		return forms[index], nil
	}
	for _, form := range doc.Forms() {
		if form.AttrOr("id", "") == ref {
			return form, nil
		}
	}
	return dom.Element{}, fmt.Errorf("formkit: form %q not found", ref)
}

func splitAssignment(raw string) (string, string, error) {
	name, value, ok := strings.Cut(raw, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return "", "", fmt.Errorf("formkit: expected name=value, got %q", raw)
	}
	return strings.TrimSpace(name), value, nil
}

// fillValues types each value into its field, firing input then change the
// way a browser does when the field loses focus.
func fillValues(doc *dom.Document, form dom.Element, assignments []string) error {
	for _, raw := range assignments {
		name, value, err := splitAssignment(raw)
		if err != nil {
			return err
		}
		field, ok := form.Query(dom.Name(name))
		if !ok {
			return fmt.Errorf("formkit: field %q not found", name)
		}
		doc.Input(field, value)
		doc.Dispatch(field, dom.EventChange)
	}
	return nil
}

func applyHidden(form dom.Element, assignments []string) error {
	fields := make([]render.HiddenField, 0, len(assignments))
	for _, raw := range assignments {
		name, value, err := splitAssignment(raw)
		if err != nil {
			return err
		}
		fields = append(fields, render.Hidden(name, value))
	}
	render.ApplyHiddenFields(form, fields...)
	return nil
}

func attachFiles(doc *dom.Document, form dom.Element, assignments []string) error {
	for _, raw := range assignments {
		name, path, err := splitAssignment(raw)
		if err != nil {
			return err
		}
		field, ok := form.Query(dom.All(dom.Input("file"), dom.Name(name)))
		if !ok {
			return fmt.Errorf("formkit: file field %q not found", name)
		}
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("formkit: file %s: %w", name, err)
		}
		contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
		if i := strings.IndexByte(contentType, ';'); i >= 0 {
			contentType = contentType[:i]
		}
		doc.SetFiles(field, dom.File{Name: filepath.Base(path), Type: contentType, Size: info.Size()})
	}
	return nil
}

func readPayload(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("formkit: read server errors: %w", err)
	}
	var payload map[string][]string
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("formkit: parse server errors: %w", err)
	}
	return payload, nil
}
