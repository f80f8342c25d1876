package service

// Mensajes de respaldo cuando el backend no envía uno propio.
const (
	MsgLoginError         = "Error al iniciar sesión"
	MsgTokenMissing       = "Token no encontrado en la respuesta"
	MsgAreasError         = "Error al obtener las áreas"
	MsgRegisterError      = "Error al registrar el movimiento"
	MsgMovementNotFound   = "Error al buscar el movimiento"
	MsgUpdateNoteError    = "Error al actualizar la observación"
	MsgProductSearchError = "Error al buscar el producto"
	MsgAccessorySearchErr = "Error al buscar el accesorio"
	MsgProductNotFound    = "Producto no encontrado"
	MsgAccessoryNotFound  = "Accesorio no encontrado"
	MsgProductCreateError = "Error al crear el producto"
	MsgAccessoryCreateErr = "Error al crear el accesorio"
	MsgProductsError      = "Error al obtener los productos"
	MsgAccessoriesError   = "Error al obtener los accesorios"
	MsgCategoriesError    = "Error al obtener las categorías"
	MsgMovementsError     = "Error al obtener los movimientos"
	MsgStockError         = "Error al obtener el stock"
	MsgSalesError         = "Error al obtener las ventas"
	MsgEmptyCode          = "Por favor ingrese un código de barras o ID"
	MsgNoResult           = "No se encontró ningún resultado"
)
