package usecase

// Client-facing messages. The site is Arabic only.
const (
	msgElementNotFound  = "العنصر غير موجود"
	msgEvidenceNotFound = "الشاهد غير موجود"
	msgFileNotFound     = "لا يوجد ملف مرفق بهذا الشاهد"
	msgAboutMeNotFound  = "لم يتم العثور على بيانات النبذة"
	msgFileTooLarge     = "حجم الملف أكبر من المسموح"
	msgFileEmpty        = "الملف فارغ"
	msgFileRejected     = "تم رفض الملف لاحتوائه على محتوى ضار"
	msgScanUnavailable  = "تعذر فحص الملف حاليا، يرجى المحاولة لاحقا"
)
