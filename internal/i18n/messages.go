package i18n

// catalog 各语言消息文案
var catalog = map[string]map[string]string{
	LocaleEN: {
		"error.bad_request":              "invalid request",
		"error.validation_failed":        "request validation failed",
		"error.unauthorized":             "authentication required",
		"error.forbidden":                "permission denied",
		"error.not_found":                "resource not found",
		"error.internal_error":           "internal server error",
		"error.auth_header_missing":      "authorization header missing",
		"error.auth_header_invalid":      "authorization header malformed",
		"error.token_invalid":            "token invalid or expired",
		"error.token_revoked":            "token has been revoked",
		"error.jwt_secret_missing":       "jwt secret not configured",
		"error.user_disabled":            "account disabled",
		"error.user_id_invalid":          "user id invalid",
		"error.user_id_type_invalid":     "user id has unexpected type",
		"error.staff_id_invalid":         "staff id invalid",
		"error.staff_id_type_invalid":    "staff id has unexpected type",
		"error.user_not_found":           "user not found",
		"error.user_not_staff":           "user is not a staff member",
		"error.rate_limit_unavailable":   "rate limiter unavailable, try again later",
		"error.login_rate_limited":       "too many login attempts, retry in %d seconds",
		"error.phone_exists":             "phone number already registered",
		"error.invalid_credentials":      "phone or password incorrect",
		"error.password_mismatch":        "passwords do not match",
		"error.weak_password":            "password does not meet the policy",
		"error.password_min_length":      "password must be at least %d characters",
		"error.password_require_upper":   "password must contain an uppercase letter",
		"error.password_require_lower":   "password must contain a lowercase letter",
		"error.password_require_number":  "password must contain a digit",
		"error.password_require_special": "password must contain a special character",
		"error.category_name_exists":     "category name already exists",
		"error.category_in_use":          "category still has stores attached",
		"error.store_name_exists":        "store name already exists",
		"error.store_in_use":             "store still has products attached",
		"error.store_category_exists":    "store already has a category with this name",
		"error.slug_exists":              "product slug already exists",
		"error.product_unavailable":      "product size unavailable",
		"error.product_in_orders":        "product is referenced by existing orders",
		"error.size_in_orders":           "size is referenced by existing orders",
		"error.discount_above_price":     "discounted price must not exceed base price",
		"error.quantity_invalid":         "quantity must be at least 1",
		"error.cart_not_found":           "cart not found",
		"error.cart_empty":               "cart is empty",
		"error.cart_item_not_found":      "cart item not found",
		"error.order_not_found":          "order not found",
		"error.order_not_pending":        "only pending orders can be removed",
		"error.order_status_invalid":     "unknown order status",
		"error.order_status_transition":  "illegal order status transition",
		"error.order_item_not_found":     "order item not found",
		"order.status.pending":           "pending",
		"order.status.accepted":          "accepted",
		"order.status.shipped":           "shipped",
		"order.status.delivered":         "delivered",
		"order.status.canceled":          "canceled",
		"email.order_status.subject":     "Your order #%d is now %s",
		"email.order_status.body":        "Hello %s,\n\nYour order #%d is now %s.\nOrder total: %s %s.\n\nThank you for shopping with us.",
		"email.order_status.tip_contact": "Reply to this email if anything looks wrong.",
		"email.order_status.guest_name":  "customer",
	},
	LocaleAR: {
		"error.bad_request":              "طلب غير صالح",
		"error.validation_failed":        "فشل التحقق من الطلب",
		"error.unauthorized":             "يلزم تسجيل الدخول",
		"error.forbidden":                "غير مسموح",
		"error.not_found":                "العنصر غير موجود",
		"error.internal_error":           "خطأ داخلي في الخادم",
		"error.auth_header_missing":      "ترويسة التفويض مفقودة",
		"error.auth_header_invalid":      "ترويسة التفويض غير صحيحة",
		"error.token_invalid":            "رمز الدخول غير صالح أو منتهي",
		"error.token_revoked":            "تم إلغاء رمز الدخول",
		"error.jwt_secret_missing":       "مفتاح JWT غير مهيأ",
		"error.user_disabled":            "الحساب موقوف",
		"error.user_id_invalid":          "معرّف المستخدم غير صالح",
		"error.user_id_type_invalid":     "نوع معرّف المستخدم غير متوقع",
		"error.staff_id_invalid":         "معرّف الموظف غير صالح",
		"error.staff_id_type_invalid":    "نوع معرّف الموظف غير متوقع",
		"error.user_not_found":           "المستخدم غير موجود",
		"error.user_not_staff":           "المستخدم ليس موظفاً",
		"error.rate_limit_unavailable":   "خدمة الحماية غير متاحة حالياً",
		"error.login_rate_limited":       "محاولات كثيرة، أعد المحاولة بعد %d ثانية",
		"error.phone_exists":             "رقم الهاتف مسجل بالفعل",
		"error.invalid_credentials":      "رقم الهاتف أو كلمة المرور غير صحيحة",
		"error.password_mismatch":        "كلمتا المرور غير متطابقتين",
		"error.weak_password":            "كلمة المرور لا تحقق الشروط",
		"error.password_min_length":      "كلمة المرور يجب ألا تقل عن %d حرفاً",
		"error.password_require_upper":   "كلمة المرور يجب أن تحتوي حرفاً كبيراً",
		"error.password_require_lower":   "كلمة المرور يجب أن تحتوي حرفاً صغيراً",
		"error.password_require_number":  "كلمة المرور يجب أن تحتوي رقماً",
		"error.password_require_special": "كلمة المرور يجب أن تحتوي رمزاً خاصاً",
		"error.category_name_exists":     "اسم التصنيف مستخدم بالفعل",
		"error.category_in_use":          "لا يزال التصنيف مرتبطاً بمتاجر",
		"error.store_name_exists":        "اسم المتجر مستخدم بالفعل",
		"error.store_in_use":             "لا يزال المتجر يحتوي على منتجات",
		"error.store_category_exists":    "يوجد قسم بنفس الاسم في هذا المتجر",
		"error.slug_exists":              "معرّف المنتج مستخدم بالفعل",
		"error.product_unavailable":      "هذا الحجم غير متاح",
		"error.product_in_orders":        "المنتج مرتبط بطلبات قائمة",
		"error.size_in_orders":           "الحجم مرتبط بطلبات قائمة",
		"error.discount_above_price":     "سعر الخصم يجب ألا يتجاوز السعر الأساسي",
		"error.quantity_invalid":         "الكمية يجب ألا تقل عن 1",
		"error.cart_not_found":           "سلة التسوق غير موجودة",
		"error.cart_empty":               "سلة التسوق فارغة",
		"error.cart_item_not_found":      "العنصر غير موجود في السلة",
		"error.order_not_found":          "الطلب غير موجود",
		"error.order_not_pending":        "لا يمكن حذف الطلب إلا وهو قيد الانتظار",
		"error.order_status_invalid":     "حالة الطلب غير معروفة",
		"error.order_status_transition":  "انتقال حالة غير مسموح",
		"error.order_item_not_found":     "عنصر الطلب غير موجود",
		"order.status.pending":           "قيد الانتظار",
		"order.status.accepted":          "مقبول",
		"order.status.shipped":           "تم الشحن",
		"order.status.delivered":         "تم التوصيل",
		"order.status.canceled":          "ملغي",
		"email.order_status.subject":     "طلبك رقم %d أصبح %s",
		"email.order_status.body":        "مرحباً %s،\n\nطلبك رقم %d أصبح %s.\nإجمالي الطلب: %s %s.\n\nشكراً لتسوقك معنا.",
		"email.order_status.tip_contact": "رد على هذه الرسالة إذا لاحظت أي خطأ.",
		"email.order_status.guest_name":  "عميلنا العزيز",
	},
}
