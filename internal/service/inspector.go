package service

import (
	"bytes"
	"fmt"

	"pdf-extractor/internal/domain"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Inspector implements domain.Inspector using pdfcpu.
type Inspector struct {
	logger domain.Logger
}

// NewInspector creates a new document inspector
func NewInspector(logger domain.Logger) *Inspector {
	return &Inspector{logger: logger}
}

// Inspect reports page count, PDF version, encryption, and AcroForm fields
// for an in-memory document.
func (in *Inspector) Inspect(pdfBytes []byte) (*domain.DocumentInfo, error) {
	if len(pdfBytes) == 0 {
		return nil, domain.ErrEmptyFile
	}
	if !bytes.HasPrefix(pdfBytes, pdfHeader) {
		return nil, domain.ErrNotPDF
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(pdfBytes), conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnparseable, err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnparseable, err)
	}

	info := &domain.DocumentInfo{
		Success:    true,
		PageCount:  ctx.PageCount,
		Encrypted:  ctx.Encrypt != nil,
		FormFields: []domain.FormField{},
	}
	if ctx.HeaderVersion != nil {
		info.Version = ctx.HeaderVersion.String()
	}

	fields, err := in.extractFormFields(ctx)
	if err != nil {
		// Form metadata is supplementary; a broken AcroForm should not
		// fail the whole inspection.
		in.logger.Warn("form field extraction failed", "error", err)
	} else {
		info.FormFields = fields
	}

	return info, nil
}

// extractFormFields walks the AcroForm Fields array in the document catalog.
// A document without an AcroForm yields an empty slice.
func (in *Inspector) extractFormFields(ctx *model.Context) ([]domain.FormField, error) {
	fields := []domain.FormField{}

	rootDict, err := ctx.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog: %w", err)
	}

	acroFormObj, found := rootDict.Find("AcroForm")
	if !found {
		return fields, nil
	}
	acroFormDict, err := ctx.DereferenceDict(acroFormObj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference AcroForm: %w", err)
	}
	if acroFormDict == nil {
		return fields, nil
	}

	fieldsObj, found := acroFormDict.Find("Fields")
	if !found {
		return fields, nil
	}
	fieldsArray, err := ctx.DereferenceArray(fieldsObj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference Fields array: %w", err)
	}

	for i, fieldRef := range fieldsArray {
		field, err := in.processField(ctx, fieldRef, i)
		if err != nil {
			in.logger.Debug("skipping malformed form field", "index", i, "error", err)
			continue
		}
		if field != nil {
			fields = append(fields, *field)
		}
	}

	return fields, nil
}

// processField reads name (T), type (FT), value (V), and flags (Ff) from a
// single field dictionary.
func (in *Inspector) processField(ctx *model.Context, fieldObj types.Object, index int) (*domain.FormField, error) {
	fieldDict, err := ctx.DereferenceDict(fieldObj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference field: %w", err)
	}
	if fieldDict == nil {
		return nil, nil
	}

	field := &domain.FormField{}

	if nameObj, found := fieldDict.Find("T"); found {
		if name, err := ctx.DereferenceStringOrHexLiteral(nameObj, model.V10, nil); err == nil {
			field.Name = name
		}
	}
	if field.Name == "" {
		field.Name = fmt.Sprintf("field_%d", index)
	}

	field.Type = in.fieldType(ctx, fieldDict)

	if valueObj, found := fieldDict.Find("V"); found {
		field.Value = in.fieldValue(ctx, valueObj, field.Type)
	}

	if flagsObj, found := fieldDict.Find("Ff"); found {
		if flags, err := ctx.DereferenceInteger(flagsObj); err == nil && flags != nil {
			field.ReadOnly = (*flags & 1) != 0 // Bit 1
			field.Required = (*flags & 2) != 0 // Bit 2
		}
	}

	return field, nil
}

// fieldType maps the FT entry to a stable type label, following the parent
// chain for inherited types.
func (in *Inspector) fieldType(ctx *model.Context, fieldDict types.Dict) string {
	ftObj, found := fieldDict.Find("FT")
	if !found {
		if parentObj, found := fieldDict.Find("Parent"); found {
			if parentDict, err := ctx.DereferenceDict(parentObj); err == nil && parentDict != nil {
				return in.fieldType(ctx, parentDict)
			}
		}
		return "unknown"
	}

	ftName, err := ctx.DereferenceName(ftObj, model.V10, nil)
	if err != nil {
		return "unknown"
	}

	switch ftName {
	case "Btn":
		if flagsObj, found := fieldDict.Find("Ff"); found {
			if flags, err := ctx.DereferenceInteger(flagsObj); err == nil && flags != nil {
				if (*flags & (1 << 15)) != 0 { // Bit 16: Radio
					return "radio"
				}
				if (*flags & (1 << 16)) != 0 { // Bit 17: Pushbutton
					return "button"
				}
			}
		}
		return "checkbox"
	case "Tx":
		return "text"
	case "Ch":
		return "select"
	case "Sig":
		return "signature"
	default:
		return "unknown"
	}
}

// fieldValue renders the V entry as a string for the wire format.
func (in *Inspector) fieldValue(ctx *model.Context, valueObj types.Object, fieldType string) string {
	switch fieldType {
	case "text", "select":
		if val, err := ctx.DereferenceStringOrHexLiteral(valueObj, model.V10, nil); err == nil {
			return val
		}
	default:
		if name, err := ctx.DereferenceName(valueObj, model.V10, nil); err == nil {
			return string(name)
		}
	}
	return ""
}
