package usecase

import (
	"context"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/apperror"
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "الشواهد"

var exportHeader = []interface{}{"العنصر", "رقم الشاهد", "العنوان", "الوصف", "نوع الملف", "اسم الملف", "تاريخ الإضافة"}

var fileTypeLabels = map[domain.FileType]string{
	domain.FileTypeNone:  "بدون ملف",
	domain.FileTypePDF:   "PDF",
	domain.FileTypeImage: "صورة",
	domain.FileTypeVideo: "فيديو",
}

// Export writes the evidence register as a right-to-left spreadsheet, grouped by element.
func (u *evidenceUsecase) Export(ctx context.Context, w io.Writer) error {
	elements, err := u.elements.Fetch(ctx)
	if err != nil {
		return apperror.Internal(err)
	}
	evidences, err := u.repo.ListAll(ctx)
	if err != nil {
		return apperror.Internal(err)
	}

	if err := writeRegister(w, elements, evidences); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func writeRegister(w io.Writer, elements []domain.Element, evidences []domain.Evidence) error {
	titles := make(map[int64]string, len(elements))
	for _, e := range elements {
		titles[e.ID] = e.Title
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return errors.Wrap(err, "rename sheet")
	}
	rtl := true
	if err := f.SetSheetView(exportSheet, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
		return errors.Wrap(err, "set sheet view")
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return errors.Wrap(err, "write header")
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(exportSheet, 1, 1, style)
	}

	for i, ev := range evidences {
		fileName := ""
		if ev.FileName != nil {
			fileName = *ev.FileName
		}
		row := []interface{}{
			titles[ev.ElementID],
			ev.EvidenceNumber,
			ev.Title,
			ev.Description,
			fileTypeLabels[ev.FileType],
			fileName,
			ev.CreatedAt.Format("2006-01-02"),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "cell name")
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return errors.Wrapf(err, "write row %d", i+2)
		}
	}

	_ = f.SetColWidth(exportSheet, "A", "A", 40)
	_ = f.SetColWidth(exportSheet, "C", "D", 50)

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "write workbook")
	}
	return nil
}
