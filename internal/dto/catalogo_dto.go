package dto

import "github.com/shopspring/decimal"

// Catalog CRUD requests. Update requests use pointers so absent fields are
// left untouched.

type CrearClienteRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,min=3"`
	Documento string  `json:"documento" validate:"required,min=3"`
	Telefono  *string `json:"telefono"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Direccion *string `json:"direccion"`
}

type ActualizarClienteRequest struct {
	Nombre    *string `json:"nombre" validate:"omitempty,min=3"`
	Telefono  *string `json:"telefono"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Direccion *string `json:"direccion"`
}

type CrearVehiculoRequest struct {
	Placa      string  `json:"placa"      validate:"required,min=5,max=10"`
	Marca      string  `json:"marca"      validate:"required"`
	Modelo     string  `json:"modelo"     validate:"required"`
	ClienteID  string  `json:"cliente_id" validate:"required,uuid"`
	Color      *string `json:"color"`
	Anio       *int    `json:"anio"       validate:"omitempty,min=1950,max=2100"`
	Cilindraje *int    `json:"cilindraje" validate:"omitempty,min=1"`
	Clase      *string `json:"clase"`
	KmActual   *int    `json:"km_actual"  validate:"omitempty,min=0"`
}

type ActualizarVehiculoRequest struct {
	Marca      *string `json:"marca"`
	Modelo     *string `json:"modelo"`
	Color      *string `json:"color"`
	Anio       *int    `json:"anio"       validate:"omitempty,min=1950,max=2100"`
	Cilindraje *int    `json:"cilindraje" validate:"omitempty,min=1"`
	Clase      *string `json:"clase"`
	ClienteID  *string `json:"cliente_id" validate:"omitempty,uuid"`
}

type CrearMecanicoRequest struct {
	Nombres        string           `json:"nombres"         validate:"required,min=2"`
	Apellidos      string           `json:"apellidos"       validate:"required,min=2"`
	Documento      string           `json:"documento"       validate:"required,min=3"`
	Telefono       *string          `json:"telefono"`
	Email          *string          `json:"email" validate:"omitempty,email"`
	Especialidad   *string          `json:"especialidad"`
	PorcentajeBase *decimal.Decimal `json:"porcentaje_base"`
}

type ActualizarMecanicoRequest struct {
	Nombres        *string          `json:"nombres" validate:"omitempty,min=2"`
	Apellidos      *string          `json:"apellidos" validate:"omitempty,min=2"`
	Telefono       *string          `json:"telefono"`
	Email          *string          `json:"email" validate:"omitempty,email"`
	Especialidad   *string          `json:"especialidad"`
	PorcentajeBase *decimal.Decimal `json:"porcentaje_base"`
	Activo         *bool            `json:"activo"`
}

type CrearServicioRequest struct {
	Nombre      string          `json:"nombre"       validate:"required,min=3"`
	Descripcion *string         `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"       validate:"required"`
	CategoriaID *string         `json:"categoria_id" validate:"omitempty,uuid"`
}

type ActualizarServicioRequest struct {
	Nombre      *string          `json:"nombre" validate:"omitempty,min=3"`
	Descripcion *string          `json:"descripcion"`
	Precio      *decimal.Decimal `json:"precio"`
	CategoriaID *string          `json:"categoria_id" validate:"omitempty,uuid"`
	Activo      *bool            `json:"activo"`
}

type CrearCategoriaRequest struct {
	Nombre string `json:"nombre" validate:"required,min=3"`
}

type CrearProveedorRequest struct {
	Nombre    string  `json:"nombre" validate:"required,min=3"`
	NIT       *string `json:"nit"`
	Telefono  *string `json:"telefono"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Direccion *string `json:"direccion"`
}

type ActualizarProveedorRequest struct {
	Nombre    *string `json:"nombre" validate:"omitempty,min=3"`
	NIT       *string `json:"nit"`
	Telefono  *string `json:"telefono"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Direccion *string `json:"direccion"`
	Activo    *bool   `json:"activo"`
}

type PagoProveedorRequest struct {
	Monto  decimal.Decimal `json:"monto"  validate:"required"`
	Motivo *string         `json:"motivo"`
}

type CrearItemAlmacenRequest struct {
	Nombre         string          `json:"nombre"          validate:"required,min=3"`
	Descripcion    *string         `json:"descripcion"`
	Categoria      *string         `json:"categoria"`
	Unidad         *string         `json:"unidad"`
	StockMinimo    decimal.Decimal `json:"stock_minimo"`
	ValorProveedor decimal.Decimal `json:"valor_proveedor" validate:"required"`
	ValorTaller    decimal.Decimal `json:"valor_taller"    validate:"required"`
	ProveedorID    *string         `json:"proveedor_id"    validate:"omitempty,uuid"`
}

type ActualizarItemAlmacenRequest struct {
	Nombre         *string          `json:"nombre" validate:"omitempty,min=3"`
	Descripcion    *string          `json:"descripcion"`
	Categoria      *string          `json:"categoria"`
	StockMinimo    *decimal.Decimal `json:"stock_minimo"`
	ValorProveedor *decimal.Decimal `json:"valor_proveedor"`
	ValorTaller    *decimal.Decimal `json:"valor_taller"`
	ProveedorID    *string          `json:"proveedor_id" validate:"omitempty,uuid"`
	Activo         *bool            `json:"activo"`
}

type EntradaAlmacenRequest struct {
	Cantidad      decimal.Decimal `json:"cantidad"       validate:"required"`
	ValorUnitario *decimal.Decimal `json:"valor_unitario"`
	ProveedorID   *string         `json:"proveedor_id"   validate:"omitempty,uuid"`
	Observaciones *string         `json:"observaciones"`
}

type CrearHerramientaRequest struct {
	Nombre      string  `json:"nombre" validate:"required,min=2"`
	Descripcion *string `json:"descripcion"`
}

type PrestarHerramientaRequest struct {
	MecanicoID    string  `json:"mecanico_id" validate:"required,uuid"`
	Observaciones *string `json:"observaciones"`
}
