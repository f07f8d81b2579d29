package i18n

var catalog = map[string]map[string]string{
	LocaleEN: {
		"error.bad_request":            "Invalid request",
		"error.unauthorized":           "Please sign in again",
		"error.forbidden":              "You do not have access to this resource",
		"error.not_found":              "Resource not found",
		"error.too_many_requests":      "Too many attempts, please try again later",
		"error.internal":               "Something went wrong, please try again",
		"error.invalid_email":          "Please enter a valid email address",
		"error.email_exists":           "An account with this email already exists",
		"error.invalid_credentials":    "Incorrect email or password",
		"error.user_disabled":          "This account has been disabled",
		"error.password_wrong":         "Current password is incorrect",
		"error.password_min_length":    "Password must be at least %d characters",
		"error.password_need_letter":   "Password must contain a letter",
		"error.password_need_number":   "Password must contain a number",
		"error.address_exists":         "This address is already saved",
		"error.address_not_found":      "Address not found",
		"error.address_invalid":        "Please fill in all required address fields",
		"error.product_not_found":      "Product not found",
		"error.product_invalid":        "Product details are incomplete",
		"error.variant_not_found":      "This size is not available",
		"error.order_empty":            "Your cart is empty",
		"error.order_invalid":          "Order details are incomplete",
		"error.order_not_found":        "Order not found",
		"error.order_status_invalid":   "Order status change is not allowed",
		"error.saved_item_exists":      "Item already saved for later",
		"error.saved_item_not_found":   "Saved item not found",
		"error.auth_header_missing":    "Missing authorization header",
		"error.auth_header_invalid":    "Invalid authorization header",
		"error.token_invalid":          "Session is invalid, please sign in again",
		"error.token_revoked":          "Session has expired, please sign in again",
		"error.login_too_many":         "Too many sign-in attempts, try again in %d seconds",
		"error.rate_limit_unavailable": "Service is busy, please try again",
		"error.name_required":          "Please enter your name",
		"error.order_create_failed":    "Could not place the order, please try again",
		"error.network":                "Network problem, please check your connection and try again",
		"error.submit_in_progress":     "Your order is already being placed",
		"error.sign_in_required":       "Please sign in to place your order",
		"error.cart_sync_failed":       "We could not move your cart to your account, so you are still browsing as a guest. Please sign in again",
		"error.cart_item_invalid":      "This item cannot be added to the cart",
		"order.status.pending":         "Pending",
		"order.status.processed":       "Processed",
		"order.status.shipped":         "Shipped",
		"order.status.delivered":       "Delivered",
		"order.status.cancelled":       "Cancelled",
		"email.order_placed.subject":   "Your Wallmasters order %s",
		"email.order_placed.greeting":  "Hi %s,\n\nThank you for your order! We received it and will contact you before delivery.",
		"email.order_placed.store":     "New order %s from %s (%s, %s).",
		"email.order_placed.line":      "- %s (%s) x %d @ %s %s",
		"email.order_placed.totals":    "Subtotal: %s %s\nShipping: %s %s\nTotal: %s %s\nPayment: cash on delivery",
		"email.order_placed.address":   "Ship to: %s, %s, %s %s, %s\nPhone: %s",
		"email.order_status.subject":   "Order %s is now %s",
		"email.order_status.body":      "Order No: %s\nStatus: %s\nTotal: %s %s",
	},
	LocaleZH: {
		"error.bad_request":            "请求参数错误",
		"error.unauthorized":           "请重新登录",
		"error.forbidden":              "无权访问该资源",
		"error.not_found":              "资源不存在",
		"error.too_many_requests":      "尝试次数过多，请稍后再试",
		"error.internal":               "服务异常，请稍后重试",
		"error.invalid_email":          "请输入有效的邮箱地址",
		"error.email_exists":           "该邮箱已注册",
		"error.invalid_credentials":    "邮箱或密码错误",
		"error.user_disabled":          "账号已被禁用",
		"error.password_wrong":         "当前密码错误",
		"error.password_min_length":    "密码长度至少 %d 位",
		"error.password_need_letter":   "密码需包含字母",
		"error.password_need_number":   "密码需包含数字",
		"error.address_exists":         "该地址已保存",
		"error.address_not_found":      "地址不存在",
		"error.address_invalid":        "请完整填写地址必填项",
		"error.product_not_found":      "商品不存在",
		"error.product_invalid":        "商品信息不完整",
		"error.variant_not_found":      "该尺寸暂不可售",
		"error.order_empty":            "购物车为空",
		"error.order_invalid":          "订单信息不完整",
		"error.order_not_found":        "订单不存在",
		"error.order_status_invalid":   "不允许的订单状态变更",
		"error.saved_item_exists":      "商品已在稍后购买列表中",
		"error.saved_item_not_found":   "收藏记录不存在",
		"error.auth_header_missing":    "缺少认证信息",
		"error.auth_header_invalid":    "认证信息格式错误",
		"error.token_invalid":          "登录状态无效，请重新登录",
		"error.token_revoked":          "登录已失效，请重新登录",
		"error.login_too_many":         "登录尝试过多，请 %d 秒后再试",
		"error.rate_limit_unavailable": "服务繁忙，请稍后重试",
		"error.name_required":          "请填写姓名",
		"error.order_create_failed":    "下单失败，请稍后重试",
		"error.network":                "网络异常，请检查网络后重试",
		"error.submit_in_progress":     "订单正在提交中",
		"error.sign_in_required":       "请先登录再下单",
		"error.cart_sync_failed":       "购物车未能同步到您的账号，当前仍为游客身份，请重新登录",
		"error.cart_item_invalid":      "该商品无法加入购物车",
		"order.status.pending":         "待处理",
		"order.status.processed":       "已处理",
		"order.status.shipped":         "已发货",
		"order.status.delivered":       "已送达",
		"order.status.cancelled":       "已取消",
		"email.order_placed.subject":   "您的 Wallmasters 订单 %s",
		"email.order_placed.greeting":  "%s 您好，\n\n感谢您的订购！我们已收到订单，送货前会与您联系。",
		"email.order_placed.store":     "新订单 %s，下单人 %s（%s，%s）。",
		"email.order_placed.line":      "- %s（%s）x %d @ %s %s",
		"email.order_placed.totals":    "小计：%s %s\n运费：%s %s\n合计：%s %s\n支付方式：货到付款",
		"email.order_placed.address":   "收货地址：%s, %s, %s %s, %s\n电话：%s",
		"email.order_status.subject":   "订单 %s 状态更新为 %s",
		"email.order_status.body":      "订单号：%s\n状态：%s\n金额：%s %s",
	},
}
